package interfaces

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	fleet "maintainiq/internal/fleet/domain"
	"maintainiq/internal/reporting/application"
	reporting "maintainiq/internal/reporting/domain"
)

const (
	summarySheet   = "Summary"
	allEventsSheet = "All Events"

	// XLSX caps sheet names at 31 characters.
	sheetNameLimit = 31
)

// workbookStyles is the fixed style palette, referenced by role so the
// same convention holds on every sheet: headers get a solid fill with
// bold white text, data rows alternate two shades by parity, numeric
// cells are right-aligned in the numeric accent, and cost values use
// the cost accent.
type workbookStyles struct {
	title     int
	meta      int
	section   int
	header    int
	tileCount int
	tileHours int
	tileCost  int
	textEven  int
	textOdd   int
	hoursEven int
	hoursOdd  int
	costEven  int
	costOdd   int
	note      int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	bottomBorder := []excelize.Border{{Type: "bottom", Color: "D9DDE8", Style: 1}}
	fillEven := excelize.Fill{Type: "pattern", Color: []string{"F5F6FA"}, Pattern: 1}
	fillOdd := excelize.Fill{Type: "pattern", Color: []string{"FFFFFF"}, Pattern: 1}
	hoursFmt := "0.0"
	costFmt := "#,##0.00"

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "1A1A2E"},
	}); err != nil {
		return s, err
	}
	if s.meta, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "6B6B78"},
	}); err != nil {
		return s, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "16213E"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"16213E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    []excelize.Border{{Type: "bottom", Color: "0F3460", Style: 2}},
	}); err != nil {
		return s, err
	}

	tile := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 13, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
	}
	if s.tileCount, err = tile("4FC3F7"); err != nil {
		return s, err
	}
	if s.tileHours, err = tile("F5A623"); err != nil {
		return s, err
	}
	if s.tileCost, err = tile("E94560"); err != nil {
		return s, err
	}

	if s.textEven, err = f.NewStyle(&excelize.Style{Fill: fillEven, Border: bottomBorder}); err != nil {
		return s, err
	}
	if s.textOdd, err = f.NewStyle(&excelize.Style{Fill: fillOdd, Border: bottomBorder}); err != nil {
		return s, err
	}

	numeric := func(fill excelize.Fill, format string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:         &excelize.Font{Color: "0F3460"},
			Fill:         fill,
			Border:       bottomBorder,
			Alignment:    &excelize.Alignment{Horizontal: "right"},
			CustomNumFmt: &format,
		})
	}
	if s.hoursEven, err = numeric(fillEven, hoursFmt); err != nil {
		return s, err
	}
	if s.hoursOdd, err = numeric(fillOdd, hoursFmt); err != nil {
		return s, err
	}
	if s.costEven, err = numeric(fillEven, costFmt); err != nil {
		return s, err
	}
	if s.costOdd, err = numeric(fillOdd, costFmt); err != nil {
		return s, err
	}

	if s.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "82828C"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// BuildReportWorkbook assembles the N+2 sheet workbook for one
// snapshot: Summary, All Events, and one sheet per distinct asset in
// the filtered set. Assembly failures abort the whole export; no
// partial workbook is ever returned.
func BuildReportWorkbook(cfg application.Config, snapshot reporting.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(allEventsSheet); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, styles, cfg, snapshot); err != nil {
		return nil, err
	}
	if err := writeAllEventsSheet(f, styles, snapshot); err != nil {
		return nil, err
	}

	if len(snapshot.Assets) > cfg.MaxAssetSheets {
		return nil, fmt.Errorf("workbook export: %d assets exceeds sheet cap %d", len(snapshot.Assets), cfg.MaxAssetSheets)
	}
	used := map[string]bool{
		strings.ToLower(summarySheet):   true,
		strings.ToLower(allEventsSheet): true,
	}
	for _, asset := range snapshot.Assets {
		sheetName, err := safeSheetName(asset.Asset, used)
		if err != nil {
			return nil, err
		}
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := writeAssetSheet(f, styles, snapshot, sheetName, asset); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// safeSheetName strips characters XLSX forbids and truncates to the
// platform limit. A collision after truncation fails the export.
func safeSheetName(asset string, used map[string]bool) (string, error) {
	name := asset
	for _, forbidden := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, forbidden, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Asset"
	}
	if runes := []rune(name); len(runes) > sheetNameLimit {
		name = strings.TrimSpace(string(runes[:sheetNameLimit]))
	}
	key := strings.ToLower(name)
	if used[key] {
		return "", fmt.Errorf("workbook export: duplicate sheet name %q after truncation", name)
	}
	used[key] = true
	return name, nil
}

func writeSummarySheet(f *excelize.File, styles workbookStyles, cfg application.Config, snapshot reporting.Snapshot) error {
	sheet := summarySheet
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 16); err != nil {
		return err
	}

	writeBrandHeader(f, sheet, styles, cfg, snapshot)
	row := writeStatTiles(f, sheet, styles, 5, snapshot.EventCount, snapshot.TotalHours, snapshot.TotalCost)

	row += 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Asset Breakdown")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.section)
	row++
	setHeaderRow(f, sheet, styles, row, []string{"Asset", "Events", "Hours", "Cost"})
	row++
	if len(snapshot.Assets) == 0 {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "No downtime recorded for this period.")
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.note)
		row++
	}
	// Full coverage here, never the on-screen top slice.
	for i, asset := range snapshot.Assets {
		text, hours, cost := rowStyles(styles, i)
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), asset.Asset)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), asset.Events)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), asset.Hours)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), asset.Cost)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), text)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), hours)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), cost)
		row++
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Category Breakdown")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.section)
	row++
	setHeaderRow(f, sheet, styles, row, []string{"Category", "Hours"})
	row++
	if len(snapshot.Categories) == 0 {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "No categorized downtime for this period.")
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.note)
		row++
	}
	for i, category := range snapshot.Categories {
		text, hours, _ := rowStyles(styles, i)
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), category.Category)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), category.Hours)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), text)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), hours)
		row++
	}
	return nil
}

var allEventsColumns = []string{"Asset", "Date", "Start", "End", "Hours", "Cost", "Category", "Description", "Reported By"}

func writeAllEventsSheet(f *excelize.File, styles workbookStyles, snapshot reporting.Snapshot) error {
	sheet := allEventsSheet
	if err := f.SetColWidth(sheet, "A", "A", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "G", 13); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "H", "H", 42); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "I", "I", 16); err != nil {
		return err
	}

	setHeaderRow(f, sheet, styles, 1, allEventsColumns)
	if len(snapshot.Events) == 0 {
		_ = f.SetCellValue(sheet, "A2", "No downtime events recorded for this period.")
		_ = f.SetCellStyle(sheet, "A2", "A2", styles.note)
		return nil
	}
	for i, event := range snapshot.Events {
		writeEventRow(f, sheet, styles, i+2, i, event, true)
	}
	return nil
}

func writeAssetSheet(f *excelize.File, styles workbookStyles, snapshot reporting.Snapshot, sheet string, asset reporting.AssetTotal) error {
	if err := f.SetColWidth(sheet, "A", "F", 13); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "G", "G", 42); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "H", "H", 16); err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", asset.Asset)
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s",
		snapshot.Range.Start.Format("2006-01-02"), snapshot.Range.End.Format("2006-01-02")))
	_ = f.SetCellStyle(sheet, "A2", "A2", styles.meta)

	row := writeStatTiles(f, sheet, styles, 4, asset.Events, asset.Hours, asset.Cost)

	row += 2
	setHeaderRow(f, sheet, styles, row, allEventsColumns[1:])
	row++
	parity := 0
	for _, event := range snapshot.Events {
		if event.Asset != asset.Asset {
			continue
		}
		writeEventRow(f, sheet, styles, row, parity, event, false)
		row++
		parity++
	}
	return nil
}

// writeStatTiles writes the three-column stat block and returns the
// last row it used.
func writeStatTiles(f *excelize.File, sheet string, styles workbookStyles, row int, events int, hours, cost float64) int {
	labels := fmt.Sprintf("%d", row)
	values := fmt.Sprintf("%d", row+1)

	_ = f.SetCellValue(sheet, "A"+labels, "Downtime Events")
	_ = f.SetCellValue(sheet, "B"+labels, "Hours Lost")
	_ = f.SetCellValue(sheet, "C"+labels, "Total Cost")
	_ = f.SetCellStyle(sheet, "A"+labels, "C"+labels, styles.header)

	_ = f.SetCellValue(sheet, "A"+values, events)
	_ = f.SetCellValue(sheet, "B"+values, hours)
	_ = f.SetCellValue(sheet, "C"+values, cost)
	_ = f.SetCellStyle(sheet, "A"+values, "A"+values, styles.tileCount)
	_ = f.SetCellStyle(sheet, "B"+values, "B"+values, styles.tileHours)
	_ = f.SetCellStyle(sheet, "C"+values, "C"+values, styles.tileCost)
	_ = f.SetRowHeight(sheet, row+1, 24)

	return row + 1
}

func writeBrandHeader(f *excelize.File, sheet string, styles workbookStyles, cfg application.Config, snapshot reporting.Snapshot) {
	_ = f.SetCellValue(sheet, "A1", strings.ToUpper(cfg.Product)+" Downtime Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s to %s",
		snapshot.Range.Start.Format("2006-01-02"), snapshot.Range.End.Format("2006-01-02")))
	_ = f.SetCellValue(sheet, "A3", fmt.Sprintf("Generated: %s", snapshot.GeneratedAt.Format("2006-01-02 15:04 MST")))
	_ = f.SetCellStyle(sheet, "A2", "A3", styles.meta)
}

func setHeaderRow(f *excelize.File, sheet string, styles workbookStyles, row int, titles []string) {
	for i, title := range titles {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, title)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(titles), row)
	_ = f.SetCellStyle(sheet, first, last, styles.header)
}

// writeEventRow writes one event. Hours and cost are stored as numeric
// cell values so spreadsheet consumers can recompute the sums.
func writeEventRow(f *excelize.File, sheet string, styles workbookStyles, row, parity int, event fleet.DowntimeEvent, withAsset bool) {
	text, hours, cost := rowStyles(styles, parity)

	values := []any{
		event.Date.Format("2006-01-02"),
		event.StartTime,
		event.EndTime,
		fleet.Numeric(event.Hours),
		fleet.Numeric(event.Cost),
		event.Category,
		event.Description,
		event.ReportedBy,
	}
	if withAsset {
		values = append([]any{event.Asset}, values...)
	}
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}

	hoursCol := 4
	if withAsset {
		hoursCol = 5
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	hoursCell, _ := excelize.CoordinatesToCellName(hoursCol, row)
	costCell, _ := excelize.CoordinatesToCellName(hoursCol+1, row)

	_ = f.SetCellStyle(sheet, first, last, text)
	_ = f.SetCellStyle(sheet, hoursCell, hoursCell, hours)
	_ = f.SetCellStyle(sheet, costCell, costCell, cost)
}

func rowStyles(styles workbookStyles, parity int) (text, hours, cost int) {
	if parity%2 == 0 {
		return styles.textEven, styles.hoursEven, styles.costEven
	}
	return styles.textOdd, styles.hoursOdd, styles.costOdd
}
