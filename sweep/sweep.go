package sweep

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wcl_check/damage"
	"wcl_check/share"
	"wcl_check/share/parallel"

	"github.com/shopspring/decimal"
)

// Calculator replays a fight under changed attributes.
type Calculator interface {
	Calculate(a damage.Attributes) (damage.Result, error)
}

type Options struct {
	Workers  int
	Progress func(string)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return share.Config.SweepWorkers
}

type Point struct {
	X int             `json:"x"`
	Y decimal.Decimal `json:"y"`
}

// HitCritPoint carries the hit and the crit curve at the same percentage.
type HitCritPoint struct {
	Value   int             `json:"hit"`
	DPS     decimal.Decimal `json:"dps"`
	CritDPS decimal.Decimal `json:"crit_dps"`
}

type SkillCurves struct {
	MainHand []Point `json:"mh"`
	OffHand  []Point `json:"oh"`
	Total    []Point `json:"total"`
}

type CurveSet struct {
	AttackPower []Point        `json:"attack_power"`
	WeaponSkill SkillCurves    `json:"weapon_skill"`
	HitCrit     []HitCritPoint `json:"hit_crit"`
}

// Table has one row per ability, Values aligned with Columns.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type Row struct {
	Ability string            `json:"ability"`
	Values  []decimal.Decimal `json:"values"`
}

type SkillTables struct {
	MainHand Table `json:"mh"`
	OffHand  Table `json:"oh"`
}

type Details struct {
	AttackPower Table       `json:"attack_power"`
	Crit        Table       `json:"crit"`
	Hit         Table       `json:"hit"`
	WeaponSkill SkillTables `json:"weapon_skill"`
}

type Report struct {
	Curves  CurveSet `json:"dps_curves"`
	Details Details  `json:"dps_gain_details"`
}

////////////////////////////////////////////////////////////////////////////////////////////////////

type axis int

const (
	axisAttackPower axis = iota
	axisMainHandSkill
	axisOffHandSkill
	axisCrit
	axisHit
)

func (x axis) attributes(v int) damage.Attributes {
	d := decimal.NewFromInt(int64(v))

	var a damage.Attributes
	switch x {
	case axisAttackPower:
		a.AttackPower = d
	case axisMainHandSkill:
		a.MainHandSkill = d
	case axisOffHandSkill:
		a.OffHandSkill = d
	case axisCrit:
		a.Crit = d
	case axisHit:
		a.Hit = d
	}
	return a
}

type job struct {
	axis  axis
	value int
}

func steps(from, to, step int) []int {
	var r []int
	for v := from; v <= to; v += step {
		r = append(r, v)
	}
	return r
}

var (
	attackPowerSteps = steps(0, 200, 10)
	percentSteps     = steps(0, 15, 1)
)

// Curves runs every grid point of the response curves and the detail tables built from them.
func Curves(ctx context.Context, calc Calculator, opt Options) (*Report, error) {
	var jobs []job
	for _, v := range attackPowerSteps {
		jobs = append(jobs, job{axisAttackPower, v})
	}
	for _, x := range []axis{axisMainHandSkill, axisOffHandSkill, axisCrit, axisHit} {
		for _, v := range percentSteps {
			jobs = append(jobs, job{x, v})
		}
	}

	attrs := make([]damage.Attributes, len(jobs))
	for i, j := range jobs {
		attrs[i] = j.axis.attributes(j.value)
	}

	results, err := run(ctx, calc, attrs, opt)
	if err != nil {
		return nil, err
	}

	byAxis := make(map[axis]map[int]damage.Result)
	for i, j := range jobs {
		m, ok := byAxis[j.axis]
		if !ok {
			m = make(map[int]damage.Result)
			byAxis[j.axis] = m
		}
		m[j.value] = results[i]
	}

	r := &Report{}

	curve := func(x axis, values []int) []Point {
		pts := make([]Point, len(values))
		for i, v := range values {
			pts[i] = Point{X: v, Y: byAxis[x][v].Total()}
		}
		return pts
	}

	r.Curves.AttackPower = curve(axisAttackPower, attackPowerSteps)
	r.Curves.WeaponSkill.MainHand = curve(axisMainHandSkill, percentSteps)
	r.Curves.WeaponSkill.OffHand = curve(axisOffHandSkill, percentSteps)
	for i, p := range r.Curves.WeaponSkill.MainHand {
		r.Curves.WeaponSkill.Total = append(r.Curves.WeaponSkill.Total, Point{
			X: p.X,
			Y: p.Y.Add(r.Curves.WeaponSkill.OffHand[i].Y),
		})
	}
	for _, v := range percentSteps {
		r.Curves.HitCrit = append(r.Curves.HitCrit, HitCritPoint{
			Value:   v,
			DPS:     byAxis[axisHit][v].Total(),
			CritDPS: byAxis[axisCrit][v].Total(),
		})
	}

	r.Details.AttackPower = table(byAxis[axisAttackPower], steps(10, 100, 10), "+%d AP")
	r.Details.Crit = table(byAxis[axisCrit], steps(1, 10, 1), "%d%%")
	r.Details.Hit = table(byAxis[axisHit], steps(1, 10, 1), "%d%%")
	r.Details.WeaponSkill.MainHand = table(byAxis[axisMainHandSkill], steps(1, 10, 1), "+%d Skill")
	r.Details.WeaponSkill.OffHand = table(byAxis[axisOffHandSkill], steps(1, 10, 1), "+%d Skill")

	return r, nil
}

// table lays out the per-ability gains of values, abilities sorted by name.
func table(results map[int]damage.Result, values []int, column string) Table {
	t := Table{Columns: make([]string, len(values))}
	for i, v := range values {
		t.Columns[i] = fmt.Sprintf(column, v)
	}

	seen := make(map[string]struct{})
	for _, v := range values {
		for label := range results[v] {
			if label != damage.LabelTotal {
				seen[label] = struct{}{}
			}
		}
	}
	abilities := make([]string, 0, len(seen))
	for label := range seen {
		abilities = append(abilities, label)
	}
	sort.Strings(abilities)

	for _, ability := range abilities {
		row := Row{Ability: ability, Values: make([]decimal.Decimal, len(values))}
		for i, v := range values {
			row.Values[i] = results[v][ability]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// run calculates every attribute set on a worker pool, results in input order.
func run(ctx context.Context, calc Calculator, attrs []damage.Attributes, opt Options) ([]damage.Result, error) {
	results := make([]damage.Result, len(attrs))

	var (
		progressLock sync.Mutex
		done         int
	)

	p := parallel.New(opt.workers())
	p.Reset(ctx)

	for i := range attrs {
		i := i
		p.Add(func(ctx context.Context) error {
			r, err := calc.Calculate(attrs[i])
			if err != nil {
				return err
			}
			share.Calculations.Inc()
			results[i] = r

			if opt.Progress != nil {
				progressLock.Lock()
				done++
				opt.Progress(fmt.Sprintf("%d / %d", done, len(attrs)))
				progressLock.Unlock()
			}
			return nil
		})
	}

	err := p.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
