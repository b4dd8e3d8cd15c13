package wow

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"strings"

	"github.com/dimchansky/utfbom"
)

// Multi-target encounters where only the listed enemies count towards the fight.
var (
	//go:embed whitelist.csv
	whitelistCSV []byte

	TargetWhitelist map[string][]string
)

func init() {
	wl, err := ParseWhitelist(bytes.NewReader(whitelistCSV))
	if err != nil {
		panic(err)
	}
	TargetWhitelist = wl
}

// ParseWhitelist reads "fight,target,target..." rows. Lines starting with '#' are ignored.
func ParseWhitelist(r io.Reader) (map[string][]string, error) {
	sr, _ := utfbom.Skip(r)

	cr := csv.NewReader(sr)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	m := make(map[string][]string)
	for {
		d, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(d) < 2 {
			continue
		}

		fight := strings.TrimSpace(d[0])
		for _, t := range d[1:] {
			if t = strings.TrimSpace(t); t != "" {
				m[fight] = append(m[fight], t)
			}
		}
	}
	return m, nil
}
