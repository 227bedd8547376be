package interfaces

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	fleet "maintainiq/internal/fleet/domain"
	"maintainiq/internal/reporting/application"
	reporting "maintainiq/internal/reporting/domain"
)

// ExportFilename builds the artifact name shared by both export
// formats: <product>-Report-<start>-to-<end>.<ext>.
func ExportFilename(product string, r reporting.DateRange, ext string) string {
	return fmt.Sprintf("%s-Report-%s-to-%s.%s",
		product, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), ext)
}

// Page layout constants for the A4 portrait report.
const (
	pdfMarginLeft = 10.0
	pdfContentW   = 190.0
	pdfPageBreakY = 272.0
	pdfRowH       = 6.0
	pdfHeaderRowH = 7.0
)

var pdfEventCols = []struct {
	title string
	width float64
	align string
}{
	{"Asset", 38, "L"},
	{"Date", 22, "L"},
	{"Category", 27, "L"},
	{"Hours", 17, "R"},
	{"Cost", 26, "R"},
	{"Description", 60, "L"},
}

// BuildReportPDF renders the paginated downtime report for one
// snapshot. The artifact is only returned whole; any render error
// aborts the export.
func BuildReportPDF(cfg application.Config, snapshot reporting.Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawBrandHeader(pdf, cfg, snapshot)
	drawStatTiles(pdf, cfg, snapshot)

	pdf.Ln(6)
	drawSectionTitle(pdf, "Downtime Events")
	if len(snapshot.Events) == 0 {
		drawNoEvents(pdf)
	} else {
		drawEventTable(pdf, cfg, snapshot.Events)
	}

	pdf.Ln(6)
	drawSectionTitle(pdf, "Downtime by Fault Category")
	if len(snapshot.Categories) == 0 {
		drawNoCategories(pdf)
	} else {
		drawCategoryTable(pdf, snapshot.Categories)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawBrandHeader(pdf *gofpdf.Fpdf, cfg application.Config, snapshot reporting.Snapshot) {
	pdf.SetFillColor(26, 26, 46)
	pdf.Rect(pdfMarginLeft, 10, pdfContentW, 22, "F")

	pdf.SetXY(pdfMarginLeft+4, 13)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 9, strings.ToUpper(cfg.Product), "", 1, "L", false, 0, "")

	pdf.SetX(pdfMarginLeft + 4)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(168, 168, 179)
	pdf.CellFormat(0, 6, "Downtime Report", "", 1, "L", false, 0, "")

	pdf.SetY(36)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(80, 80, 90)
	period := fmt.Sprintf("Period: %s to %s",
		snapshot.Range.Start.Format("2006-01-02"), snapshot.Range.End.Format("2006-01-02"))
	pdf.CellFormat(pdfContentW/2, 5, period, "", 0, "L", false, 0, "")
	generated := fmt.Sprintf("Generated: %s", snapshot.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.CellFormat(pdfContentW/2, 5, generated, "", 1, "R", false, 0, "")
}

func drawStatTiles(pdf *gofpdf.Fpdf, cfg application.Config, snapshot reporting.Snapshot) {
	const tileH = 17.0
	gap := 5.0
	tileW := (pdfContentW - 2*gap) / 3
	y := pdf.GetY() + 3

	drawTile(pdf, pdfMarginLeft, y, tileW, tileH,
		"DOWNTIME EVENTS", fmt.Sprintf("%d", snapshot.EventCount), 79, 195, 247)
	drawTile(pdf, pdfMarginLeft+tileW+gap, y, tileW, tileH,
		"HOURS LOST", reporting.FormatHours(snapshot.TotalHours), 245, 166, 35)
	// Cost keeps the red accent so it reads as a cost figure.
	drawTile(pdf, pdfMarginLeft+2*(tileW+gap), y, tileW, tileH,
		"TOTAL COST", reporting.FormatCurrency(cfg.CurrencySymbol, snapshot.TotalCost), 233, 69, 96)

	pdf.SetY(y + tileH)
}

func drawTile(pdf *gofpdf.Fpdf, x, y, w, h float64, label, value string, r, g, b int) {
	pdf.SetFillColor(r, g, b)
	pdf.Rect(x, y, w, h, "F")

	pdf.SetXY(x, y+2.5)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")

	pdf.SetXY(x, y+8)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(w, 7, value, "", 0, "C", false, 0, "")
}

func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	ensureRoom(pdf, pdfHeaderRowH+2*pdfRowH, nil)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(26, 26, 46)
	pdf.CellFormat(pdfContentW, 7, title, "", 1, "L", false, 0, "")
}

func drawNoEvents(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(130, 130, 140)
	pdf.CellFormat(pdfContentW, 8, "No downtime events recorded for this period.", "", 1, "L", false, 0, "")
}

func drawNoCategories(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(130, 130, 140)
	pdf.CellFormat(pdfContentW, 8, "No categorized downtime for this period.", "", 1, "L", false, 0, "")
}

func drawEventTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8.5)
	pdf.SetFillColor(22, 33, 62)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfEventCols {
		pdf.CellFormat(col.width, pdfHeaderRowH, col.title, "", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
}

func drawEventTable(pdf *gofpdf.Fpdf, cfg application.Config, events []fleet.DowntimeEvent) {
	drawEventTableHeader(pdf)
	pdf.SetDrawColor(220, 223, 232)
	for i, event := range events {
		ensureRoom(pdf, pdfRowH, drawEventTableHeader)

		fill := i%2 == 0
		pdf.SetFillColor(245, 246, 250)
		pdf.SetFont("Arial", "", 8.5)
		pdf.SetTextColor(40, 40, 50)

		cells := []string{
			event.Asset,
			event.Date.Format("2006-01-02"),
			event.Category,
			reporting.FormatHours(fleet.Numeric(event.Hours)),
			reporting.FormatCurrency(cfg.CurrencySymbol, fleet.Numeric(event.Cost)),
			event.Description,
		}
		for c, col := range pdfEventCols {
			text := fitText(pdf, cells[c], col.width-2)
			pdf.CellFormat(col.width, pdfRowH, text, "B", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawCategoryTable(pdf *gofpdf.Fpdf, categories []reporting.CategoryTotal) {
	header := func(pdf *gofpdf.Fpdf) {
		pdf.SetFont("Arial", "B", 8.5)
		pdf.SetFillColor(22, 33, 62)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(60, pdfHeaderRowH, "Category", "", 0, "L", true, 0, "")
		pdf.CellFormat(30, pdfHeaderRowH, "Hours", "", 1, "R", true, 0, "")
	}
	header(pdf)
	pdf.SetDrawColor(220, 223, 232)
	for i, total := range categories {
		ensureRoom(pdf, pdfRowH, header)

		fill := i%2 == 0
		pdf.SetFillColor(245, 246, 250)
		pdf.SetFont("Arial", "", 8.5)
		pdf.SetTextColor(40, 40, 50)
		pdf.CellFormat(60, pdfRowH, fitText(pdf, total.Category, 58), "B", 0, "L", fill, 0, "")
		pdf.CellFormat(30, pdfRowH, reporting.FormatHours(total.Hours), "B", 1, "R", fill, 0, "")
	}
}

// ensureRoom starts a new page before content would overflow, redrawing
// the supplied table header on the fresh page.
func ensureRoom(pdf *gofpdf.Fpdf, needed float64, header func(*gofpdf.Fpdf)) {
	if pdf.GetY()+needed <= pdfPageBreakY {
		return
	}
	pdf.AddPage()
	pdf.SetY(15)
	if header != nil {
		header(pdf)
	}
}

// fitText trims a string to the given cell width, appending an
// ellipsis when it was cut.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
