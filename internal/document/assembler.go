// Package document assembles the legacy HTML documents, one per part of a
// book.
package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/reformat"
	"github.com/aosman25/islam-ai/internal/structure"
)

// ErrEmptyPage is returned when a page has neither body nor footnote text.
var ErrEmptyPage = errors.New("page has no content")

const partNumberPrefix = " - جـ "

var (
	numericLabel = regexp.MustCompile(`^[0-9]+$`)
	leadingSup   = regexp.MustCompile(`^<sup>(<font color=#be0000>\(\d+\)</font>)</sup>`)
)

// PartTitle is the document title and page-head label for a part.
func PartTitle(bookName, label string) string {
	if label == "" {
		return bookName
	}
	if numericLabel.MatchString(label) {
		if n, err := strconv.Atoi(label); err == nil {
			return bookName + partNumberPrefix + reformat.ToNativeDigits(n)
		}
	}
	return bookName + " - " + label
}

// Assembler renders the parts of one book. The metadata page is built once
// and repeated at the top of every part.
type Assembler struct {
	book   catalog.BookInfo
	betaka string
}

// NewAssembler prepares an assembler for book. betaka may be nil when the
// book has no metadata page.
func NewAssembler(book catalog.BookInfo, betaka *string) *Assembler {
	a := &Assembler{book: book}
	if betaka != nil {
		a.betaka = BuildBetakaPage(book, *betaka)
	}
	return a
}

// Part renders one part document. pages are rendered in the given order and
// texts must hold content for each of them. The result uses CRLF line
// endings throughout.
func (a *Assembler) Part(label string, pages []structure.Page, texts map[int]index.PageContent) (string, error) {
	title := PartTitle(a.book.Name, label)

	var b strings.Builder
	b.WriteString(htmlHeader)
	b.WriteString(title)
	b.WriteString(htmlTitleEnd)
	b.WriteString(a.betaka)

	for _, p := range pages {
		content, ok := texts[p.ID]
		if !ok || content.Empty() {
			return "", fmt.Errorf("page %d: %w", p.ID, ErrEmptyPage)
		}
		writePage(&b, title, p, content)
	}

	b.WriteString(htmlFooter)
	return strings.ReplaceAll(b.String(), "\n", "\r\n"), nil
}

func writePage(b *strings.Builder, title string, p structure.Page, content index.PageContent) {
	b.WriteString("<div class='PageText'><div class='PageHead'><span class='PartName'>")
	b.WriteString(title)
	b.WriteString("</span>")
	if p.PrintedPage != nil {
		b.WriteString("<span class='PageNumber'>(ص: ")
		b.WriteString(reformat.ToNativeDigits(*p.PrintedPage))
		b.WriteString(")</span>")
	}
	b.WriteString("<hr/></div>")
	b.WriteString(composeBody(content))
	b.WriteString("</div>\n")
}

func composeBody(content index.PageContent) string {
	switch {
	case content.Body != "" && content.Foot != "":
		foot := reformat.Format(content.Foot)
		if strings.HasPrefix(foot, "<sup><font color=#be0000>(") {
			foot = leadingSup.ReplaceAllString(foot, "${1}")
		}
		return reformat.Format(content.Body) + reformat.FootnoteOpen + foot + "</div>"
	case content.Body != "":
		return closeFootnotes(reformat.Format(content.Body))
	default:
		return closeFootnotes(reformat.Format(content.Foot))
	}
}

// closeFootnotes closes a footnote container opened by the formatter.
func closeFootnotes(text string) string {
	if strings.Contains(text, reformat.FootnoteDiv) {
		return text + reformat.FootnoteClose
	}
	return text
}
