package wcl

// ReportDetails is the response of /report/fights/{code}.
type ReportDetails struct {
	Title      string  `json:"title"`
	Zone       int     `json:"zone"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Fights     []Fight `json:"fights"`
	Friendlies []Actor `json:"friendlies"`
	Enemies    []Actor `json:"enemies"`
}

type Fight struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Boss      int    `json:"boss"`
	Kill      bool   `json:"kill"`
}

// Duration in milliseconds.
func (f Fight) Duration() int64 {
	return f.EndTime - f.StartTime
}

type Actor struct {
	ID     int          `json:"id"`
	GUID   int64        `json:"guid"`
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Server string       `json:"server,omitempty"`
	Fights []ActorFight `json:"fights"`
}

type ActorFight struct {
	ID        int `json:"id"`
	Instances int `json:"instances,omitempty"`
}

func (a Actor) InFight(fightID int) bool {
	for _, f := range a.Fights {
		if f.ID == fightID {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////////////////////////

type eventsPage struct {
	Events            []Event `json:"events"`
	NextPageTimestamp int64   `json:"nextPageTimestamp"`
}

type Event struct {
	Timestamp        int64   `json:"timestamp"`
	Type             string  `json:"type"`
	SourceID         int     `json:"sourceID"`
	SourceIsFriendly bool    `json:"sourceIsFriendly"`
	TargetID         int     `json:"targetID"`
	TargetIsFriendly bool    `json:"targetIsFriendly"`
	Ability          Ability `json:"ability"`
	HitType          int     `json:"hitType"`
	Amount           int64   `json:"amount"`
	Absorbed         int64   `json:"absorbed,omitempty"`
	HitPoints        int64   `json:"hitPoints,omitempty"`
	MaxHitPoints     int64   `json:"maxHitPoints,omitempty"`
	Auras            []Aura  `json:"auras,omitempty"`
}

type Ability struct {
	Name string `json:"name"`
	GUID int    `json:"guid"`
	Type int    `json:"type,omitempty"`
}

type Aura struct {
	Source  int    `json:"source"`
	Ability int    `json:"ability"`
	Stacks  int    `json:"stacks"`
	Name    string `json:"name,omitempty"`
}
