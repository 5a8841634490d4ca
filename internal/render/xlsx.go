package render

import (
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/scorecard/internal/model"
)

// Sheet names in the workbook.
const (
	SheetSummary         = "Summary"
	SheetDimensions      = "Dimensions"
	SheetRecommendations = "Recommendations"
)

// XLSX renders a spreadsheet workbook.
type XLSX struct{}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSX) Extension() string { return ".xlsx" }

func (XLSX) Render(ctx context.Context, result *model.AnalysisResult, w io.Writer) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return eris.Wrap(err, "render: add summary sheet")
	}
	addRow(summary, "Subcomponent", result.SubcomponentID)
	addRow(summary, "Session", result.SessionID)
	scoreRow := summary.AddRow()
	scoreRow.AddCell().SetString("Overall Score")
	scoreRow.AddCell().SetFloat(result.OverallScore)
	addRow(summary, "Overall Band", result.OverallBand)
	addRow(summary, "Timestamp", result.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	addRow(summary, "Strengths", strings.Join(result.Strengths, "\n"))
	addRow(summary, "Weaknesses", strings.Join(result.Weaknesses, "\n"))

	dims, err := f.AddSheet(SheetDimensions)
	if err != nil {
		return eris.Wrap(err, "render: add dimensions sheet")
	}
	addRow(dims, "Dimension", "Weight", "Score", "Band", "Category", "Feedback", "Strengths", "Improvements")
	for _, d := range result.Dimensions {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := dims.AddRow()
		row.AddCell().SetString(d.Name)
		row.AddCell().SetFloat(d.Weight)
		row.AddCell().SetFloat(d.Score)
		row.AddCell().SetString(d.Band)
		row.AddCell().SetString(d.Category)
		row.AddCell().SetString(d.Feedback)
		row.AddCell().SetString(strings.Join(d.Strengths, "\n"))
		row.AddCell().SetString(strings.Join(d.Improvements, "\n"))
	}

	recs, err := f.AddSheet(SheetRecommendations)
	if err != nil {
		return eris.Wrap(err, "render: add recommendations sheet")
	}
	addRow(recs, "#", "Recommendation")
	for i, r := range result.Recommendations {
		row := recs.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(r)
	}

	return eris.Wrap(f.Write(w), "render: write xlsx")
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
