// Package reformat turns raw page text from the text index into the markup
// the legacy desktop reader emitted. The transformation is an ordered list of
// steps; each step sees the output of the previous one, so the order in
// Steps is part of the contract.
package reformat

import (
	"regexp"
	"strings"
)

// Markup fragments shared with the document assembler.
const (
	FootnoteOpen  = "<hr width='95' align='right'><div class='footnote'>"
	FootnoteDiv   = "<div class='footnote'>"
	FootnoteClose = "<p></div>"
	ZWNJ          = "&#8204;"
	redFont       = "<font color=#be0000>"
	fontEnd       = "</font>"
	paragraphEnd  = "</p>"
)

// Step is a single named transformation in the pipeline.
type Step struct {
	Name  string
	Apply func(string) string
}

var steps = []Step{
	{Name: "reorder-diacritics", Apply: reorderDiacritics},
	{Name: "expand-ligatures", Apply: expandLigatures},
	{Name: "strip-stray-marker", Apply: stripStrayMarker},
	{Name: "ornate-brackets", Apply: replaceOrnateBrackets},
	{Name: "western-digits", Apply: ToWesternDigits},
	{Name: "paragraph-breaks", Apply: paragraphBreaks},
	{Name: "title-spans", Apply: wrapTitleSpans},
	{Name: "footnote-separator", Apply: openFootnoteSeparator},
	{Name: "marked-footnotes", Apply: styleMarkedFootnotes},
	{Name: "plain-footnotes", Apply: stylePlainFootnotes},
	{Name: "ellipsis", Apply: styleEllipsis},
	{Name: "arabic-comma", Apply: arabicComma},
	{Name: "numbered-entries", Apply: styleNumberedEntries},
}

// Steps returns the pipeline in execution order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Format runs raw through every step. Empty input yields empty output.
func Format(raw string) string {
	if raw == "" {
		return ""
	}
	text := raw
	for _, s := range steps {
		text = s.Apply(text)
	}
	return text
}

var (
	vowelBeforeShadda   = regexp.MustCompile(`([\x{064E}-\x{0650}\x{0652}])(\x{0651})`)
	shaddaBeforeTanween = regexp.MustCompile(`(\x{0651})([\x{064B}-\x{064D}])`)
)

// reorderDiacritics serializes shadda before short vowels and sukun, and
// tanween before shadda.
func reorderDiacritics(text string) string {
	text = vowelBeforeShadda.ReplaceAllString(text, "${2}${1}")
	return shaddaBeforeTanween.ReplaceAllString(text, "${2}${1}")
}

type ligature struct {
	char      string
	expansion string
}

var ligaturesBeforeContext = []ligature{
	{"\uFDFD", "بسم الله الرحمن الرحيم"},
	{"\uFDFA", "صلى الله عليه وسلم"},
	{"\uFD40", "رحمه الله"},
	{"\uFD4F", "رحمهم الله"},
	{"\uFD41", "رضي الله عنه"},
	{"\uFD44", "رضي الله عنهما"},
	{"\uFD42", "رضي الله عنها"},
	{"\uFD43", "رضي الله عنهم"},
	{"\uFD49", "عليه السلام"},
	{"\uFD4A", "عليه الصلاة والسلام"},
	{"\uFD4D", "عليها السلام"},
}

var ligaturesAfterContext = []ligature{
	{"\uFD4E", "تبارك وتعالى"},
	{"\uFDFB", "جل جلاله"},
	{"\uFDFE", "سبحانه وتعالى"},
	{"\uFDFF", "عز وجل"},
}

const (
	contextLigature = "\uFD47"
	divinePhrase    = "عز وجل"
	prophetPhrase   = "عليه السلام"
)

// divineReference matches U+FD47 right after الله, رب or الرب, each letter
// optionally followed by any run of harakat.
var divineReference = func() *regexp.Regexp {
	const marks = `[\x{064B}-\x{0652}]*`
	word := func(letters ...string) string {
		return strings.Join(letters, marks) + marks
	}
	words := "(" + word("ا", "ل", "ل", "ه") + "|" + word("ر", "ب") + "|" + word("ا", "ل", "ر", "ب") + ")"
	return regexp.MustCompile(words + `\s*` + contextLigature)
}()

func expandLigatures(text string) string {
	for _, l := range ligaturesBeforeContext {
		text = strings.ReplaceAll(text, l.char, l.expansion)
	}
	text = divineReference.ReplaceAllString(text, "${1} "+divinePhrase)
	text = strings.ReplaceAll(text, contextLigature, prophetPhrase)
	for _, l := range ligaturesAfterContext {
		text = strings.ReplaceAll(text, l.char, l.expansion)
	}
	return text
}

// stripStrayMarker drops a ¬ that is not part of a (¬N) marker.
func stripStrayMarker(text string) string {
	return strings.ReplaceAll(text, "¬ ", " ")
}

var ornateBrackets = strings.NewReplacer("\uFD3F", "{", "\uFD3E", "}")

func replaceOrnateBrackets(text string) string {
	return ornateBrackets.Replace(text)
}

var lineBreaks = strings.NewReplacer("\r\n", paragraphEnd, "\n", paragraphEnd, "\r", paragraphEnd)

func paragraphBreaks(text string) string {
	text = lineBreaks.Replace(text)
	return strings.ReplaceAll(text, paragraphEnd+paragraphEnd, paragraphEnd+"&nbsp;"+paragraphEnd)
}

var (
	dataTypeTitle = regexp.MustCompile(`(<span data-type=['"]title['"][^>]*>)`)
	classTitle    = regexp.MustCompile(`<span class=['"]title['"]>`)
)

func wrapTitleSpans(text string) string {
	text = dataTypeTitle.ReplaceAllString(text, ZWNJ+"${1}"+ZWNJ)

	locs := classTitle.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		if !strings.HasSuffix(text[:loc[0]], ZWNJ) {
			b.WriteString(ZWNJ)
		}
		b.WriteString(text[loc[0]:loc[1]])
		b.WriteString(ZWNJ)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

const underscoreSeparator = paragraphEnd + "_________" + paragraphEnd

// openFootnoteSeparator converts only the first separator; later runs stay as
// literal separators inside the footnote container.
func openFootnoteSeparator(text string) string {
	return strings.Replace(text, underscoreSeparator, FootnoteOpen, 1)
}

var (
	markedAtStart     = regexp.MustCompile(`^\(¬(\d+)\)`)
	markedAfterBreak  = regexp.MustCompile(`</p> ?\(¬(\d+)\)`)
	markedAtFootnotes = regexp.MustCompile(`(<div class='footnote'>) ?\(¬(\d+)\)`)
	markedInline      = regexp.MustCompile(` ?\(¬(\d+)\)`)
)

func styleMarkedFootnotes(text string) string {
	text = markedAtStart.ReplaceAllString(text, redFont+"(${1})"+fontEnd)
	text = markedAfterBreak.ReplaceAllString(text, paragraphEnd+redFont+"(${1})"+fontEnd)
	text = markedAtFootnotes.ReplaceAllString(text, "${1}"+redFont+"(${2})"+fontEnd)
	return markedInline.ReplaceAllString(text, "<sup>"+redFont+"(${1})"+fontEnd+"</sup>")
}

var (
	plainAtFootnotes = regexp.MustCompile(`(<div class='footnote'>)\((\d+)\)`)
	// Up to two digits so a parenthesised year is not taken for a marker.
	plainAfterBreak = regexp.MustCompile(`</p>\((\d{1,2})\) `)
)

func stylePlainFootnotes(text string) string {
	text = plainAtFootnotes.ReplaceAllString(text, "${1}"+redFont+"(${2})"+fontEnd)
	return plainAfterBreak.ReplaceAllString(text, paragraphEnd+redFont+"(${1})"+fontEnd+" ")
}

func styleEllipsis(text string) string {
	text = strings.ReplaceAll(text, "…", redFont+"…"+fontEnd)
	return strings.ReplaceAll(text, " ... ", " "+redFont+"…"+fontEnd+" ")
}

func arabicComma(text string) string {
	return strings.ReplaceAll(text, ",", "،")
}

var numberedEntry = regexp.MustCompile(`(^|</p>)(\d+) -(&#8204;|<sup>|\s)`)

func styleNumberedEntries(text string) string {
	return numberedEntry.ReplaceAllString(text, "${1}"+redFont+"${2} -"+fontEnd+"${3}")
}
