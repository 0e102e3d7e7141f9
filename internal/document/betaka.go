package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/reformat"
)

const (
	red     = "<font color=#be0000>"
	fontEnd = "</font>"

	categoryLabel    = "القسم:"
	publishDateLabel = "تاريخ النشر بالشاملة"

	// A colon further into the line than this is prose, not a label.
	maxLabelRunes = 30
)

var hijriMonths = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الثاني",
	"جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان",
	"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

var (
	betakaLines     = regexp.MustCompile(`\r\n|\r|\n`)
	dashBeforeDigit = regexp.MustCompile(` -(\d)`)
	dateToken       = regexp.MustCompile(`"date"\s*:\s*"([^"]*)"`)
)

// BuildBetakaPage renders the metadata page that opens every part.
func BuildBetakaPage(book catalog.BookInfo, betaka string) string {
	var b strings.Builder
	b.WriteString("<div class='PageText'>")
	b.WriteString("<span class='title'>")
	b.WriteString(book.Name)
	b.WriteString("&nbsp;&nbsp;&nbsp;</span>")
	if book.AuthorName != "" {
		b.WriteString("<span class='footnote'>(")
		b.WriteString(book.AuthorName)
		b.WriteString(")</span>")
	}
	if book.CategoryName != "" {
		b.WriteString("<p><span class='title'>" + categoryLabel + "</span> ")
		b.WriteString(book.CategoryName)
	}
	b.WriteString("<hr>")

	for _, line := range betakaLines.Split(betaka, -1) {
		line = trimControl(line)
		if line == "" {
			continue
		}
		b.WriteString(betakaLine(line))
	}

	if date, ok := PublishDate(book.MetaData); ok {
		b.WriteString("<p><span class='title'>" + publishDateLabel + red + ":" + fontEnd + "</span> ")
		b.WriteString(date)
	}

	b.WriteString("</div>\n")
	return b.String()
}

func betakaLine(line string) string {
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		if offset := utf8.RuneCountInString(line[:idx]); offset > 0 && offset < maxLabelRunes {
			label := formatBetakaValue(trimControl(line[:idx]))
			value := formatBetakaValue(trimControl(line[idx+1:]))
			return "<p><span class='title'>" + label + red + ":" + fontEnd + "</span> " + value
		}
	}
	if len(line) >= 2 && strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		return "<p>" + red + "[" + fontEnd + line[1:len(line)-1] + red + "]" + fontEnd
	}
	return "<p>" + line
}

var betakaPunctuation = strings.NewReplacer(
	"(", red+"("+fontEnd,
	")", red+")"+fontEnd,
)

func formatBetakaValue(v string) string {
	v = reformat.ToWesternDigits(v)
	v = strings.ReplaceAll(v, " - ", " "+red+"-"+fontEnd+" ")
	v = dashBeforeDigit.ReplaceAllString(v, " "+red+"-"+fontEnd+"${1}")
	v = betakaPunctuation.Replace(v)
	return strings.ReplaceAll(v, "،", red+"،"+fontEnd)
}

// PublishDate extracts the DDMMYYYY "date" token of a book metadata blob and
// renders it with the Hijri month name. ok is false when the token is absent
// or malformed.
func PublishDate(meta string) (string, bool) {
	m := dateToken.FindStringSubmatch(meta)
	if m == nil {
		return "", false
	}
	raw := reformat.ToWesternDigits(m[1])
	if len(raw) != 8 || strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", false
	}
	day, _ := strconv.Atoi(raw[0:2])
	month, _ := strconv.Atoi(raw[2:4])
	year, _ := strconv.Atoi(raw[4:8])
	if month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%d %s %d", day, hijriMonths[month-1], year), true
}

// trimControl strips leading and trailing ASCII spaces and control characters.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
