package analysispool

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"wcl_check/damage"
	"wcl_check/fight"
	"wcl_check/share"
	"wcl_check/sweep"

	"github.com/shopspring/decimal"
)

var (
	//go:embed result.tmpl.htm
	resultTemplate string

	tmplResult = template.Must(
		template.New("result.tmpl.htm").Funcs(template.FuncMap(share.TemplateFuncMap)).Parse(resultTemplate),
	)
)

type gainRow struct {
	Label string
	Value decimal.Decimal
}

type resultData struct {
	ID        string
	UpdatedAt string

	Analysis *fight.Analysis
	Gains    []gainRow
	Report   *sweep.Report
}

func render(buf *bytes.Buffer, id string, a *fight.Analysis, gains damage.Result, r *sweep.Report) error {
	data := resultData{
		ID:        id,
		UpdatedAt: time.Now().Format("2006-01-02 15:04:05"),
		Analysis:  a,
		Report:    r,
	}
	for _, label := range damage.Labels {
		data.Gains = append(data.Gains, gainRow{label, gains[label]})
	}

	return tmplResult.Execute(buf, &data)
}
