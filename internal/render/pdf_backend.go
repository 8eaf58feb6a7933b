package render

import (
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	orientationPortraitConstant = "P"
	unitPointConstant           = "pt"
	sizeLetterConstant          = "Letter"
	fontFamilyConstant          = "Helvetica"
	boldStyleConstant           = "B"
	regularStyleConstant        = ""
	creatorConstant             = "aeon"

	// PageMargin is the margin on every side of a page, in points.
	PageMargin = 72.0
	// PageHeight is the height of a US Letter page, in points.
	PageHeight = 792.0
	// TitleFontSize is the title size, in points.
	TitleFontSize = 16.0
	// BodyFontSize is the body text size, in points.
	BodyFontSize = 10.0
	// BodyOffset separates the title baseline from the first body baseline.
	BodyOffset = 24.0
	// Leading is the distance between body baselines.
	Leading = 14.0
)

// PaginatedBackend lays out a titled document and writes the encoded result to output.
type PaginatedBackend interface {
	Render(output io.Writer, title string, lines []string) error
}

// PDFBackend produces US Letter PDF documents with Helvetica text.
type PDFBackend struct{}

// NewPDFBackend constructs a PDFBackend.
func NewPDFBackend() PDFBackend {
	return PDFBackend{}
}

// Render draws the title on the first page and flows the lines across as many pages as needed.
func (backend PDFBackend) Render(output io.Writer, title string, lines []string) error {
	document := fpdf.New(orientationPortraitConstant, unitPointConstant, sizeLetterConstant, "")
	document.SetMargins(PageMargin, PageMargin, PageMargin)
	document.SetAutoPageBreak(false, PageMargin)
	document.SetTitle(title, true)
	document.SetCreator(creatorConstant, false)
	translate := document.UnicodeTranslatorFromDescriptor("")

	for pageIndex, pageLines := range backend.Paginate(lines) {
		document.AddPage()
		baseline := PageMargin
		if pageIndex == 0 {
			document.SetFont(fontFamilyConstant, boldStyleConstant, TitleFontSize)
			document.Text(PageMargin, baseline, translate(title))
			baseline += BodyOffset
		}
		document.SetFont(fontFamilyConstant, regularStyleConstant, BodyFontSize)
		for _, line := range pageLines {
			document.Text(PageMargin, baseline, translate(line))
			baseline += Leading
		}
	}

	return document.Output(output)
}

// Paginate groups lines by page. A new page starts whenever the next baseline would fall
// below the bottom margin. The result always holds at least the title page.
func (backend PDFBackend) Paginate(lines []string) [][]string {
	pages := [][]string{{}}
	baseline := PageMargin + BodyOffset
	for _, line := range lines {
		if baseline > PageHeight-PageMargin {
			pages = append(pages, []string{})
			baseline = PageMargin
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], line)
		baseline += Leading
	}
	return pages
}
