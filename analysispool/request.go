package analysispool

import (
	"hash"
	"strings"

	"wcl_check/cache"
	"wcl_check/damage"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// RequestData is the first JSON message of a websocket analysis, and the body of the REST calls.
type RequestData struct {
	Report     string            `json:"report_id"`
	FightID    int               `json:"fight_id"`
	PlayerID   int               `json:"player_id"`
	Status     damage.Status     `json:"current_status"`
	Attributes damage.Attributes `json:"attributes"`
}

// UnmarshalJSON starts from the default character sheet when current_status is left out.
func (r *RequestData) UnmarshalJSON(b []byte) error {
	type plain RequestData
	v := plain{Status: damage.DefaultStatus()}
	err := jsoniter.Unmarshal(b, &v)
	if err != nil {
		return errors.WithStack(err)
	}
	*r = RequestData(v)
	return nil
}

func (r *RequestData) Validate() bool {
	r.Report = strings.TrimSpace(r.Report)

	switch {
	case len(r.Report) < 8:
	case len(r.Report) > 32:
	case r.FightID <= 0:
	case r.PlayerID <= 0:
	case r.Status.MainHandSpeed.IsNegative():
	case r.Status.OffHandSpeed.IsNegative():
	default:
		return true
	}

	return false
}

func (r *RequestData) Hash() hash.Hash {
	st := r.Status.WithDefaults()
	a := r.Attributes

	return cache.Key(
		r.Report, r.FightID, r.PlayerID,
		st.MainHandSkill, st.OffHandSkill, st.MainHandSpeed, st.OffHandSpeed, st.Hit, st.Crit,
		a.Strength, a.Agility, a.AttackPower, a.Crit, a.Hit, a.Haste, a.MainHandSkill, a.OffHandSkill,
	)
}
