package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/domain/render"
	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
	"github.com/skinlab/skinanalyzer/pkg/util"
)

const (
	pageMargin   = 20.0
	contentWidth = 210 - 2*pageMargin // A4 portrait
	bottomLimit  = 297 - pageMargin - 15
	sectionGap   = 8.0
	lineHeight   = 5.5
	maxDescLines = 2
	disclaimer   = "Данный анализ носит информационный характер и не заменяет консультацию врача-дерматолога."
	reportTitle  = "Отчёт об анализе кожи"
)

// Exporter renders an analysis result into a downloadable PDF report. The
// section order is fixed and matches the on-screen report.
type Exporter struct {
	now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{now: util.NowUTC}
}

// FileName returns the date-stamped download name for a report generated now.
func (e *Exporter) FileName() string {
	return fmt.Sprintf("skin-analysis-report-%s.pdf", e.now().Format("2006-01-02"))
}

// Render produces the PDF bytes for a result document.
func (e *Exporter) Render(res analysis.Result) ([]byte, error) {
	view := render.BuildReportView(res)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, tr(disclaimer), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	e.writeHeader(pdf, tr)
	e.writeHealth(pdf, tr, view.Health)
	e.writeSkinType(pdf, tr, view)
	e.writeSummary(pdf, tr, view.Summary)
	e.writeConditions(pdf, tr, view.Conditions)
	e.writeZones(pdf, tr, view.Legend)
	e.writeCauses(pdf, tr, view.PossibleCauses)
	e.writeRecommendations(pdf, tr, view.Recommendations)
	e.writeDermatologist(pdf, tr, view.Dermatologist)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap("service_error", "render pdf report", err)
	}
	return buf.Bytes(), nil
}

// ensureSpace starts a new page when the next block would cross the footer
// zone, resetting the cursor to the top margin.
func ensureSpace(pdf *gofpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > bottomLimit {
		pdf.AddPage()
		pdf.SetY(pageMargin)
	}
}

func sectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	ensureSpace(pdf, 16)
	pdf.Ln(sectionGap)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(contentWidth, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func bodyFont(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 50)
}

func (e *Exporter) writeHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFillColor(13, 148, 136)
	pdf.Rect(pageMargin, pageMargin, contentWidth, 18, "F")
	pdf.SetXY(pageMargin+4, pageMargin+3)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(contentWidth-8, 8, tr(reportTitle), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth-8, 5, tr("Дата: "+e.now().Format("02.01.2006")), "", 1, "L", false, 0, "")
	pdf.SetXY(pageMargin, pageMargin+20)
}

// writeHealth draws the overall score with a color-banded bar.
func (e *Exporter) writeHealth(pdf *gofpdf.Fpdf, tr func(string) string, health render.HealthView) {
	sectionTitle(pdf, tr, "Общее состояние кожи")
	ensureSpace(pdf, 14)

	r, g, b := bandColor(health.Band)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(30, 8, fmt.Sprintf("%d/100", health.Score), "", 0, "L", false, 0, "")

	barX := pdf.GetX()
	barY := pdf.GetY() + 2
	barW := contentWidth - 30
	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(barX, barY, barW, 4, "F")
	pdf.SetFillColor(r, g, b)
	pdf.Rect(barX, barY, barW*float64(health.Score)/100, 4, "F")
	pdf.Ln(10)
}

func bandColor(band string) (int, int, int) {
	switch band {
	case "good":
		return 46, 160, 67
	case "caution":
		return 212, 160, 23
	default:
		return 207, 34, 46
	}
}

func (e *Exporter) writeSkinType(pdf *gofpdf.Fpdf, tr func(string) string, view render.ReportView) {
	sectionTitle(pdf, tr, "Тип кожи")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(contentWidth, 6, tr(view.SkinTypeLabel), "", 1, "L", false, 0, "")
	if view.SkinTypeDescription != "" {
		bodyFont(pdf)
		pdf.MultiCell(contentWidth, lineHeight, tr(view.SkinTypeDescription), "", "L", false)
	}
}

func (e *Exporter) writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, summary string) {
	if summary == "" {
		return
	}
	sectionTitle(pdf, tr, "Заключение")
	bodyFont(pdf)
	pdf.MultiCell(contentWidth, lineHeight, tr(summary), "", "L", false)
}

func (e *Exporter) writeConditions(pdf *gofpdf.Fpdf, tr func(string) string, conditions []render.ConditionView) {
	if len(conditions) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Обнаруженные состояния")
	for _, c := range conditions {
		ensureSpace(pdf, 14)
		r, g, b := severityColor(c.Severity.Style)
		pdf.SetFillColor(r, g, b)
		pdf.Circle(pdf.GetX()+2, pdf.GetY()+3, 1.5, "F")
		pdf.SetX(pdf.GetX() + 6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(contentWidth-6, 6, tr(c.Name+"  ("+c.Severity.Label+")"), "", 1, "L", false, 0, "")
		if c.Description != "" {
			pdf.SetX(pageMargin + 6)
			bodyFont(pdf)
			pdf.MultiCell(contentWidth-6, lineHeight, tr(c.Description), "", "L", false)
		}
		pdf.Ln(1)
	}
}

func severityColor(style string) (int, int, int) {
	switch style {
	case "success":
		return 46, 160, 67
	case "warning":
		return 212, 160, 23
	case "danger":
		return 207, 34, 46
	default:
		return 130, 130, 130
	}
}

func (e *Exporter) writeZones(pdf *gofpdf.Fpdf, tr func(string) string, legend []render.LegendEntry) {
	if len(legend) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Проблемные зоны")
	for _, entry := range legend {
		ensureSpace(pdf, 8)
		pdf.SetFillColor(13, 148, 136)
		pdf.Circle(pdf.GetX()+3, pdf.GetY()+3, 3, "F")
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(pdf.GetX(), pdf.GetY()+0.5)
		pdf.CellFormat(6, 5, fmt.Sprintf("%d", entry.Index), "", 0, "C", false, 0, "")
		pdf.SetXY(pageMargin+8, pdf.GetY()-0.5)
		bodyFont(pdf)
		line := fmt.Sprintf("%s (%s)", entry.Problem, entry.Severity.Label)
		pdf.CellFormat(contentWidth-8, 6, tr(line), "", 1, "L", false, 0, "")
		pdf.SetX(pageMargin)
		pdf.Ln(1)
	}
}

func (e *Exporter) writeCauses(pdf *gofpdf.Fpdf, tr func(string) string, causes []string) {
	if len(causes) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Возможные причины")
	bodyFont(pdf)
	for _, cause := range causes {
		ensureSpace(pdf, lineHeight+2)
		pdf.CellFormat(4, lineHeight, "-", "", 0, "L", false, 0, "")
		pdf.MultiCell(contentWidth-4, lineHeight, tr(cause), "", "L", false)
	}
}

func (e *Exporter) writeRecommendations(pdf *gofpdf.Fpdf, tr func(string) string, recs []render.RecommendationView) {
	if len(recs) == 0 {
		return
	}
	sectionTitle(pdf, tr, "Рекомендации")
	for _, rec := range recs {
		ensureSpace(pdf, 18)
		pdf.SetFillColor(240, 250, 248)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(contentWidth, 7, tr("  "+rec.Title+"  ["+rec.CategoryLabel+"]"), "", 1, "L", true, 0, "")
		if rec.Description != "" {
			bodyFont(pdf)
			for _, line := range wrapLines(pdf, tr(rec.Description), contentWidth-4, maxDescLines) {
				pdf.SetX(pageMargin + 2)
				pdf.CellFormat(contentWidth-4, lineHeight, line, "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(2)
	}
}

// wrapLines splits translated text at the given width and keeps at most max
// lines, marking the cut with an ellipsis. The current font must already be
// set, SplitText measures with it.
func wrapLines(pdf *gofpdf.Fpdf, translated string, width float64, max int) []string {
	lines := pdf.SplitText(translated, width)
	if len(lines) <= max {
		return lines
	}
	lines = lines[:max]
	lines[max-1] += "..."
	return lines
}

func (e *Exporter) writeDermatologist(pdf *gofpdf.Fpdf, tr func(string) string, derm *render.DermatologistView) {
	if derm == nil {
		return
	}
	sectionTitle(pdf, tr, "Рекомендуется консультация дерматолога")
	if derm.Reason != "" {
		bodyFont(pdf)
		pdf.MultiCell(contentWidth, lineHeight, tr(derm.Reason), "", "L", false)
	}
}

