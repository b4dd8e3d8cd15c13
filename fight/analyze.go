package fight

import (
	"context"

	"wcl_check/damage"
	"wcl_check/share"
	"wcl_check/wcl"
	"wcl_check/wow"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrFightNotFound = errors.New("fight not found")

// Source is the part of the log provider the analysis needs.
type Source interface {
	ReportDetails(ctx context.Context, code string) (*wcl.ReportDetails, error)
	FightEvents(ctx context.Context, code string, start, end int64, sourceID int) ([]wcl.Event, error)
}

type Analysis struct {
	Report      string `json:"report"`
	FightID     int    `json:"fight_id"`
	FightName   string `json:"fight_name"`
	CharacterID int    `json:"character_id"`

	Duration decimal.Decimal `json:"duration"` // seconds
	Buffs    damage.Buffs    `json:"buffs"`
	Faction  wow.Faction     `json:"faction"`
	Bosses   []Boss          `json:"bosses"`
	Status   damage.Status   `json:"status"`

	Events  []damage.CombatEvent          `json:"events"`
	Stats   map[string]damage.AbilityStat `json:"stats"`
	Summary []Row                         `json:"summary"`
}

// Fight is the calculator input of the analysis.
func (a *Analysis) Fight() *damage.Fight {
	ids := make([]int, len(a.Bosses))
	for i, b := range a.Bosses {
		ids[i] = b.ID
	}

	return &damage.Fight{
		BossIDs:  ids,
		Events:   a.Events,
		Duration: a.Duration,
		Buffs:    a.Buffs,
		Stats:    a.Stats,
		Status:   a.Status,
		Faction:  a.Faction,
	}
}

// Analyze fetches one fight of charID and runs the full ingestion pipeline on it.
func Analyze(ctx context.Context, src Source, code string, fightID int, charID int, status damage.Status) (*Analysis, error) {
	rd, err := src.ReportDetails(ctx, code)
	if err != nil {
		return nil, err
	}

	f, ok := findFight(rd, fightID)
	if !ok {
		return nil, errors.Wrapf(ErrFightNotFound, "%s #%d", code, fightID)
	}

	status = status.WithDefaults()

	a := &Analysis{
		Report:      code,
		FightID:     fightID,
		FightName:   f.Name,
		CharacterID: charID,
		Duration:    decimal.NewFromInt(f.Duration()).Div(decimal.NewFromInt(1000)),
		Faction:     Faction(rd),
		Bosses:      Bosses(rd, fightID),
		Status:      status,
		Stats:       make(map[string]damage.AbilityStat),
	}

	events, err := src.FightEvents(ctx, code, f.StartTime, f.EndTime, charID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		log.Info().Str("report", code).Int("fight", fightID).Int("char", charID).Msg("no events")
		return a, nil
	}

	a.Buffs = AnalyzeBuffs(events, f.EndTime, charID)

	whitelist := share.NewSortedStrings(wow.TargetWhitelist[f.Name]...)
	attacks := Convert(FilterDamage(events, charID, TargetNames(rd), whitelist))

	a.Summary = Summarize(attacks, a.Duration)

	ClassifySwings(attacks, status.MainHandSpeed, status.OffHandSpeed)
	a.Stats = AbilityStats(attacks, a.Buffs)
	a.Events = attacks

	log.Info().
		Str("report", code).
		Str("fight", f.Name).
		Str("faction", string(a.Faction)).
		Str("dark_fortune", a.Buffs.DarkFortune.String()).
		Str("zandalar", a.Buffs.Zandalar.String()).
		Int("events", len(attacks)).
		Interface("main", a.Stats[wow.KeyMainHand]).
		Interface("off", a.Stats[wow.KeyOffHand]).
		Msg("analysis")

	return a, nil
}
