package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// PDFExporter renders generated timetables as one weekly grid per section,
// days across the top and periods down the side.
type PDFExporter struct {
	days          []string
	periodsPerDay int
}

// NewPDFExporter constructs an exporter for the configured grid shape.
func NewPDFExporter(days []string, periodsPerDay int) *PDFExporter {
	return &PDFExporter{days: days, periodsPerDay: periodsPerDay}
}

// Render creates a PDF with one page per section. Cell text shows the
// subject and teacher IDs; empty cells stay blank.
func (e *PDFExporter) Render(entries []models.TimetableEntry, title string) ([]byte, error) {
	if len(e.days) == 0 || e.periodsPerDay <= 0 {
		return nil, fmt.Errorf("pdf requires a non-empty grid")
	}

	type cell struct {
		day    string
		period int
	}
	bySection := make(map[string]map[cell]models.TimetableEntry)
	for _, entry := range entries {
		if bySection[entry.SectionID] == nil {
			bySection[entry.SectionID] = make(map[cell]models.TimetableEntry)
		}
		bySection[entry.SectionID][cell{entry.Day, entry.Period}] = entry
	}
	sections := make([]string, 0, len(bySection))
	for section := range bySection {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	headerWidth := 20.0
	colWidth := (277.0 - headerWidth) / float64(len(e.days))

	for _, section := range sections {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		heading := strings.ToUpper(strings.TrimSpace(title + " " + section))
		pdf.CellFormat(0, 10, heading, "", 1, "C", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(headerWidth, 8, "Period", "1", 0, "C", false, 0, "")
		for _, day := range e.days {
			pdf.CellFormat(colWidth, 8, day, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for period := 1; period <= e.periodsPerDay; period++ {
			pdf.CellFormat(headerWidth, 10, fmt.Sprintf("%d", period), "1", 0, "C", false, 0, "")
			for _, day := range e.days {
				text := ""
				if entry, ok := bySection[section][cell{day, period}]; ok {
					text = fmt.Sprintf("%s / %s", entry.SubjectID, entry.TeacherID)
				}
				pdf.CellFormat(colWidth, 10, text, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
