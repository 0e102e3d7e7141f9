package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/reformat"
	"github.com/aosman25/islam-ai/internal/structure"
)

func intPtr(n int) *int { return &n }

func crlf(s string) string { return strings.ReplaceAll(s, "\n", "\r\n") }

func pageHead(title string, printed string) string {
	head := "<div class='PageText'><div class='PageHead'><span class='PartName'>" + title + "</span>"
	if printed != "" {
		head += "<span class='PageNumber'>(ص: " + printed + ")</span>"
	}
	return head + "<hr/></div>"
}

func TestPartTitle(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"", "كتاب"},
		{"3", "كتاب - جـ ٣"},
		{"12", "كتاب - جـ ١٢"},
		{"مقدمة", "كتاب - مقدمة"},
		{"99999999999999999999999", "كتاب - 99999999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, PartTitle("كتاب", tt.label))
		})
	}
}

func TestAssembler_Part_Golden(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	pages := []structure.Page{
		{ID: 1, Part: "2", PrintedPage: intPtr(5)},
		{ID: 2, Part: "2"},
		{ID: 3, Part: "2", PrintedPage: intPtr(6)},
		{ID: 4, Part: "2"},
	}
	texts := map[int]index.PageContent{
		// trailing footnote block
		1: {Body: "متن (¬1)", Foot: " (¬1) حاشية"},
		// body only
		2: {Body: "سطر"},
		// body carrying its own footnote separator
		3: {Body: "نص\n_________\n(1) حاشية"},
		// footnote only
		4: {Foot: "(¬2) تعليق"},
	}

	got, err := NewAssembler(book, nil).Part("2", pages, texts)
	require.NoError(t, err)

	title := "كتاب - جـ ٢"
	want := crlf(htmlHeader + title + htmlTitleEnd +
		pageHead(title, "٥") +
		"متن<sup>" + red + "(1)" + fontEnd + "</sup>" +
		reformat.FootnoteOpen + red + "(1)" + fontEnd + " حاشية</div>" +
		"</div>\n" +
		pageHead(title, "") + "سطر" + "</div>\n" +
		pageHead(title, "٦") + "نص" + reformat.FootnoteOpen + red + "(1)" + fontEnd + " حاشية" +
		reformat.FootnoteClose + "</div>\n" +
		pageHead(title, "") + red + "(2)" + fontEnd + " تعليق" + "</div>\n" +
		htmlFooter)

	assert.Equal(t, want, got)
}

func TestAssembler_Part_FootnoteOnlyWithSeparator(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	texts := map[int]index.PageContent{1: {Foot: "a\n_________\n(1) b"}}

	got, err := NewAssembler(book, nil).Part("", []structure.Page{{ID: 1}}, texts)
	require.NoError(t, err)

	body := "a" + reformat.FootnoteOpen + red + "(1)" + fontEnd + " b" + reformat.FootnoteClose
	assert.Contains(t, got, pageHead("كتاب", "")+body+"</div>\r\n")
}

func TestAssembler_Part_BetakaOnEveryPart(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	betaka := "الناشر: دار"
	a := NewAssembler(book, &betaka)
	texts := map[int]index.PageContent{1: {Body: "أ"}, 2: {Body: "ب"}}

	first, err := a.Part("1", []structure.Page{{ID: 1, Part: "1"}}, texts)
	require.NoError(t, err)
	second, err := a.Part("2", []structure.Page{{ID: 2, Part: "2"}}, texts)
	require.NoError(t, err)

	page := crlf(BuildBetakaPage(book, betaka))
	for _, doc := range []string{first, second} {
		afterTitle := doc[strings.Index(doc, crlf(htmlTitleEnd))+len(crlf(htmlTitleEnd)):]
		assert.True(t, strings.HasPrefix(afterTitle, page))
	}
}

func TestAssembler_Part_CRLF(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	got, err := NewAssembler(book, nil).Part("", []structure.Page{{ID: 1}}, map[int]index.PageContent{1: {Body: "أ"}})
	require.NoError(t, err)

	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
	assert.True(t, strings.HasPrefix(got, "\r\n<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(got, "</div>\r\n"+htmlFooter))
}

func TestAssembler_Part_EmptyPage(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	a := NewAssembler(book, nil)

	_, err := a.Part("", []structure.Page{{ID: 1}}, map[int]index.PageContent{1: {}})
	assert.True(t, errors.Is(err, ErrEmptyPage))

	_, err = a.Part("", []structure.Page{{ID: 2}}, map[int]index.PageContent{})
	assert.True(t, errors.Is(err, ErrEmptyPage))
}

func TestAssembler_Part_PageNumberInNativeDigits(t *testing.T) {
	book := catalog.BookInfo{Book: catalog.Book{ID: 1, Name: "كتاب"}}
	pages := []structure.Page{{ID: 1, PrintedPage: intPtr(1446)}}

	got, err := NewAssembler(book, nil).Part("", pages, map[int]index.PageContent{1: {Body: "صفحة ١٤٤٦"}})
	require.NoError(t, err)

	assert.Contains(t, got, "<span class='PageNumber'>(ص: ١٤٤٦)</span>")
	assert.Contains(t, got, "صفحة 1446")
}

func TestAssembler_Part_ParsesAsHTML(t *testing.T) {
	book := catalog.BookInfo{
		Book:       catalog.Book{ID: 1, Name: "كتاب", MetaData: `{"date":"01011440"}`},
		AuthorName: "مؤلف",
	}
	betaka := "الكتاب: كتاب"
	pages := []structure.Page{{ID: 1, PrintedPage: intPtr(1)}, {ID: 2, PrintedPage: intPtr(2)}}
	texts := map[int]index.PageContent{1: {Body: "أ"}, 2: {Body: "ب", Foot: "ج"}}

	got, err := NewAssembler(book, &betaka).Part("مقدمة", pages, texts)
	require.NoError(t, err)

	root, err := html.Parse(strings.NewReader(got))
	require.NoError(t, err)

	var (
		dir       string
		title     string
		pageTexts int
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				dir = attr(n, "dir")
			case "title":
				if n.FirstChild != nil {
					title = n.FirstChild.Data
				}
			case "div":
				if attr(n, "class") == "PageText" {
					pageTexts++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	assert.Equal(t, "rtl", dir)
	assert.Equal(t, "كتاب - مقدمة", title)
	assert.Equal(t, 3, pageTexts)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
