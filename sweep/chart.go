package sweep

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// AssetsHost serves echarts.min.js to the rendered pages.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

func lineData(pts []Point) []opts.LineData {
	r := make([]opts.LineData, len(pts))
	for i, p := range pts {
		r[i] = opts.LineData{Value: p.Y.Round(4).InexactFloat64()}
	}
	return r
}

func xAxis(pts []Point) []string {
	r := make([]string, len(pts))
	for i, p := range pts {
		r[i] = strconv.Itoa(p.X)
	}
	return r
}

func newLine(title, subtitle, xName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "480px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "DPS", NameLocation: "middle", NameGap: 40}),
	)
	return line
}

// RenderChart writes an HTML page with the attack power, weapon skill and hit/crit curves.
func RenderChart(w io.Writer, subtitle string, c *CurveSet) error {
	ap := newLine("Attack Power", subtitle, "AP")
	ap.SetXAxis(xAxis(c.AttackPower)).
		AddSeries("total", lineData(c.AttackPower))

	skill := newLine("Weapon Skill", subtitle, "skill")
	skill.SetXAxis(xAxis(c.WeaponSkill.MainHand)).
		AddSeries("main hand", lineData(c.WeaponSkill.MainHand)).
		AddSeries("off hand", lineData(c.WeaponSkill.OffHand)).
		AddSeries("total", lineData(c.WeaponSkill.Total))

	hit := make([]Point, len(c.HitCrit))
	crit := make([]Point, len(c.HitCrit))
	for i, p := range c.HitCrit {
		hit[i] = Point{X: p.Value, Y: p.DPS}
		crit[i] = Point{X: p.Value, Y: p.CritDPS}
	}
	hitCrit := newLine("Hit / Crit", subtitle, "%")
	hitCrit.SetXAxis(xAxis(hit)).
		AddSeries("hit", lineData(hit)).
		AddSeries("crit", lineData(crit))

	page := components.NewPage()
	page.SetAssetsHost(AssetsHost)
	page.AddCharts(ap, skill, hitCrit)

	return errors.WithStack(page.Render(w))
}
