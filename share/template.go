package share

import (
	"text/template"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	TemplateFuncMap = template.FuncMap{
		"fn": func(value interface{}) string {
			switch e := value.(type) {
			case decimal.Decimal:
				f, _ := e.Float64()
				return humanize.CommafWithDigits(f, 2)
			case float32:
				return humanize.CommafWithDigits(float64(e), 1)
			case float64:
				return humanize.CommafWithDigits(e, 1)
			case int:
				return humanize.Comma(int64(e))
			case int64:
				return humanize.Comma(e)
			}
			return ""
		},
		// signed, for deltas
		"fd": func(d decimal.Decimal) string {
			f, _ := d.Float64()
			s := humanize.CommafWithDigits(f, 2)
			if d.IsPositive() {
				return "+" + s
			}
			return s
		},
		"pct": func(d decimal.Decimal) string {
			return d.StringFixed(2) + "%"
		},
	}
)
