package fight

import (
	"wcl_check/wcl"
	"wcl_check/wow"
)

type Summary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Duration int64  `json:"duration"`
}

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Boss struct {
	ID   int    `json:"id"`
	GUID int64  `json:"guid"`
	Name string `json:"name"`
}

// Fights lists the fights of a report. bossOnly keeps killed bosses only.
func Fights(rd *wcl.ReportDetails, bossOnly bool) []Summary {
	if rd == nil {
		return nil
	}

	r := make([]Summary, 0, len(rd.Fights))
	for _, f := range rd.Fights {
		if bossOnly && (f.Boss == 0 || !f.Kill) {
			continue
		}
		r = append(r, Summary{ID: f.ID, Name: f.Name, Duration: f.Duration()})
	}
	return r
}

func Warriors(rd *wcl.ReportDetails) []Player {
	if rd == nil {
		return nil
	}

	var r []Player
	for _, p := range rd.Friendlies {
		if p.Type == wow.ClassWarrior && p.Name != wow.PetName {
			r = append(r, Player{ID: p.ID, Name: p.Name})
		}
	}
	return r
}

// Faction guesses the raid faction: any paladin means Alliance.
func Faction(rd *wcl.ReportDetails) wow.Faction {
	if rd == nil || len(rd.Friendlies) == 0 {
		return wow.FactionUnknown
	}

	for _, p := range rd.Friendlies {
		if p.Type == wow.ClassPaladin {
			return wow.Alliance
		}
	}
	return wow.Horde
}

// Bosses lists the boss actors present in fightID, each once.
func Bosses(rd *wcl.ReportDetails, fightID int) []Boss {
	if rd == nil {
		return nil
	}

	var r []Boss
	seen := make(map[int]struct{})
	for _, e := range rd.Enemies {
		if e.Type != wow.EnemyTypeBoss || !e.InFight(fightID) {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		r = append(r, Boss{ID: e.ID, GUID: e.GUID, Name: e.Name})
	}
	return r
}

func findFight(rd *wcl.ReportDetails, fightID int) (wcl.Fight, bool) {
	for _, f := range rd.Fights {
		if f.ID == fightID {
			return f, true
		}
	}
	return wcl.Fight{}, false
}
