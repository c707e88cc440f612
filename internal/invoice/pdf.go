package invoice

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	pageMarginX  = 15.0
	pageMarginY  = 20.0
	contentWidth = 180.0 // A4 width minus horizontal margins

	colDescription = 72.0
	colQuantity    = 27.0
	colUnitPrice   = 36.0
	colTotal       = 45.0
)

// RenderPDF renders the invoice document to a single A4 page. It has no side
// effects and may be called repeatedly for live preview. A nil invoice yields
// empty output instead of an error, so callers can render loading states
// without guarding.
func RenderPDF(inv *Data) ([]byte, error) {
	if inv == nil {
		return nil, nil
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginX, pageMarginY, pageMarginX)
	pdf.SetAutoPageBreak(true, pageMarginY)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	symbol := CurrencySymbol(inv.Currency)

	renderHeader(pdf, tr, inv)
	renderParties(pdf, tr, inv)
	renderItems(pdf, tr, inv.Items, symbol)
	renderTotal(pdf, tr, inv.Subtotal, symbol)
	renderNotes(pdf, tr, inv.Notes)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *gofpdf.Fpdf, tr func(string) string, inv *Data) {
	if imgType := logoImageType(inv.Company.Logo); imgType != "" {
		opts := gofpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(inv.Company.Logo))
		pdf.ImageOptions("company-logo", pageMarginX, pageMarginY-5, 22, 22, false, opts, 0, "")
	}

	pdf.SetXY(pageMarginX+100, pageMarginY)
	pdf.SetTextColor(102, 102, 102)
	if inv.Number != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(12, 5, tr("N°:"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, inv.Number, "", 1, "L", false, 0, "")
	}
	pdf.SetX(pageMarginX + 100)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Date: %s", inv.Date)), "", 1, "L", false, 0, "")
	pdf.Ln(12)
}

// renderParties draws the two-column issuer/client block. Empty fields are
// skipped the same way the form renders them.
func renderParties(pdf *gofpdf.Fpdf, tr func(string) string, inv *Data) {
	colWidth := contentWidth/2 - 5
	top := pdf.GetY()

	issuer := skipEmpty(inv.Company.TaxID, inv.Company.Address, inv.Company.Phone, inv.Company.Email)
	client := skipEmpty(inv.Client.Address, inv.Client.Phone, inv.Client.Email)

	renderParty(pdf, tr, pageMarginX, top, colWidth, "Company", inv.Company.Name, issuer)
	bottom := pdf.GetY()
	renderParty(pdf, tr, pageMarginX+colWidth+10, top, colWidth, "Client", inv.Client.Name, client)
	if pdf.GetY() > bottom {
		bottom = pdf.GetY()
	}
	pdf.SetXY(pageMarginX, bottom+10)
}

func skipEmpty(lines ...string) []string {
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func renderParty(pdf *gofpdf.Fpdf, tr func(string) string, x, y, width float64, title, name string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetDrawColor(221, 221, 221)
	pdf.CellFormat(width, 7, tr(title), "B", 2, "L", false, 0, "")
	pdf.Ln(2)

	if name != "" {
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(width, 6, tr(name), "", 2, "L", false, 0, "")
	}
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	for _, line := range lines {
		pdf.SetX(x)
		pdf.MultiCell(width, 5, tr(line), "", "L", false)
	}
}

func renderItems(pdf *gofpdf.Fpdf, tr func(string) string, items []Item, symbol string) {
	if len(items) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(248, 249, 250)
	pdf.SetDrawColor(222, 226, 230)
	pdf.CellFormat(colDescription, 9, tr("Description"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQuantity, 9, tr("Quantity"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colUnitPrice, 9, tr("Unit price"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colTotal, 9, tr("Total"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	for _, it := range items {
		pdf.CellFormat(colDescription, 8, tr(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQuantity, 8, it.Quantity.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colUnitPrice, 8, tr(money(it.UnitPrice, symbol)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colTotal, 8, tr(money(it.Total, symbol)), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func renderTotal(pdf *gofpdf.Fpdf, tr func(string) string, subtotal decimal.Decimal, symbol string) {
	boxWidth := 70.0
	pdf.SetX(pageMarginX + contentWidth - boxWidth)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(248, 249, 250)
	pdf.SetDrawColor(222, 226, 230)
	pdf.CellFormat(boxWidth/2, 12, tr("Total"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(boxWidth/2, 12, tr(money(subtotal, symbol)), "1", 1, "R", true, 0, "")
	pdf.Ln(10)
}

func renderNotes(pdf *gofpdf.Fpdf, tr func(string) string, notes string) {
	if notes == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(contentWidth, 7, tr("Notes"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.MultiCell(contentWidth, 5, tr(notes), "", "L", false)
}

// money formats a monetary amount with exactly two decimal places and the
// resolved currency symbol.
func money(d decimal.Decimal, symbol string) string {
	return symbol + d.StringFixed(2)
}

// logoImageType sniffs the logo bytes and returns the image type name gofpdf
// expects, or "" if the format is not renderable.
func logoImageType(logo []byte) string {
	if len(logo) == 0 {
		return ""
	}
	switch http.DetectContentType(logo) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}
