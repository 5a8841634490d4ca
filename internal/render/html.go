package render

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scorecard/internal/model"
)

// HTML renders a standalone HTML report.
type HTML struct{}

func (HTML) ContentType() string { return "text/html; charset=utf-8" }
func (HTML) Extension() string   { return ".html" }

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": formatScore,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Scorecard {{.SubcomponentID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #1f2933; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #cbd2d9; padding: .4rem .6rem; text-align: left; vertical-align: top; }
.band { text-transform: capitalize; }
</style>
</head>
<body>
<h1>Scorecard {{.SubcomponentID}}</h1>
<p>Session {{.SessionID}} &middot; overall {{score .OverallScore}} (<span class="band">{{.OverallBand}}</span>)</p>
{{.Summary}}
<h2>Dimensions</h2>
<table>
<tr><th>Dimension</th><th>Score</th><th>Band</th><th>Feedback</th><th>Strengths</th><th>Improvements</th></tr>
{{- range .Dimensions}}
<tr>
<td>{{.Name}}</td><td>{{score .Score}}</td><td class="band">{{.Band}}</td><td>{{.Feedback}}</td>
<td><ul>{{range .Strengths}}<li>{{.}}</li>{{end}}</ul></td>
<td><ul>{{range .Improvements}}<li>{{.}}</li>{{end}}</ul></td>
</tr>
{{- end}}
</table>
{{- if .Recommendations}}
<h2>Recommendations</h2>
<ol>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ol>
{{- end}}
</body>
</html>
`))

type htmlView struct {
	*model.AnalysisResult
	Summary template.HTML
}

func (HTML) Render(ctx context.Context, result *model.AnalysisResult, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// The executive summary is composed from escaped fragments.
	view := htmlView{AnalysisResult: result, Summary: template.HTML(result.ExecutiveSummary)} //nolint:gosec
	return eris.Wrap(htmlReport.Execute(w, view), "render: html")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
