package main

import (
	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/structure"
)

type sampleBook struct {
	book    catalog.Book
	betaka  string
	pages   []structure.Page
	texts   map[int]index.PageContent
	aliases []structure.Alias
}

func intPtr(n int) *int { return &n }

var sampleCategories = []catalog.Category{
	{ID: 1, Name: "كتب السنة"},
	{ID: 2, Name: "شروح الحديث"},
}

var sampleAuthors = []catalog.Author{
	{ID: 1, Name: "أبو عبد الله البخاري", DeathText: "256"},
	{ID: 2, Name: "ابن حجر العسقلاني", DeathText: "852"},
}

// sampleBooks holds a collection and a commentary that borrows one of its
// pages through an alias.
var sampleBooks = []sampleBook{
	{
		book: catalog.Book{
			ID: 2, Name: "مختصر الصحيح", CategoryID: 1, AuthorID: 1,
			MetaData: `{"date": "12031446"}`,
		},
		betaka: "الكتاب: مختصر الصحيح\nالمؤلف: أبو عبد الله البخاري (ت ٢٥٦هـ)\n[ترقيم الكتاب موافق للمطبوع]",
		pages: []structure.Page{
			{ID: 1, Part: "1", PrintedPage: intPtr(1)},
			{ID: 2, Part: "1", PrintedPage: intPtr(2)},
		},
		texts: map[int]index.PageContent{
			1: {Body: "باب بدء الوحي\nحدثنا الحميدي, قال: حدثنا سفيان (¬1)", Foot: "(¬1) هو ابن عيينة."},
			2: {Body: "١ - إنما الأعمال بالنيات\n٢ - وإنما لكل امرئ ما نوى"},
		},
	},
	{
		book: catalog.Book{ID: 1, Name: "شرح مختصر الصحيح", CategoryID: 2, AuthorID: 2},
		pages: []structure.Page{
			{ID: 1, Part: "", PrintedPage: nil},
			{ID: 2, Part: "1", PrintedPage: intPtr(5)},
			{ID: 3, Part: "1", PrintedPage: intPtr(6)},
			{ID: 4, Part: "2", PrintedPage: intPtr(1)},
		},
		texts: map[int]index.PageContent{
			1: {Body: "مقدمة الشارح"},
			2: {Body: "قوله ﷺ: إنما الأعمال بالنيات ..."},
			4: {Foot: "_________\n(1) انظر ما تقدم."},
		},
		aliases: []structure.Alias{
			{PageID: 3, DonorBookID: 2, DonorPageID: 2},
		},
	},
}
