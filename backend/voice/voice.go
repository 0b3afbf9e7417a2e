// Package voice extracts planning fields from a speech transcript produced by
// the browser's recogniser.
package voice

import (
	"regexp"
	"strconv"
	"strings"
)

// Draft holds the fields recognised in a transcript. Zero values mean the
// field was not mentioned.
type Draft struct {
	Destination string   `json:"destination,omitempty"`
	Budget      float64  `json:"budget,omitempty"`
	Travelers   int      `json:"travelers,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	RawText     string   `json:"rawText"`
}

var (
	destinationRe = regexp.MustCompile(`去([^，,。、]+?)(?:[，,。、]|$)`)
	budgetRe      = regexp.MustCompile(`预算[：:]?(\d+)([万千百]?)[元块]`)
	travelersRe   = regexp.MustCompile(`(\d+)[人个]`)
)

var budgetUnits = map[string]float64{
	"万": 10000,
	"千": 1000,
	"百": 100,
}

// preference tags in display order, each with the words that trigger it.
var preferenceKeywords = []struct {
	tag   string
	words []string
}{
	{"美食", []string{"美食"}},
	{"历史文化", []string{"历史", "文化"}},
	{"自然风光", []string{"自然", "风景"}},
	{"购物", []string{"购物"}},
	{"动漫", []string{"动漫", "二次元"}},
	{"亲子", []string{"孩子", "亲子"}},
}

// ParseTranscript recognises destination, budget, traveler count and
// preference tags in text.
func ParseTranscript(text string) Draft {
	d := Draft{RawText: text}

	if m := destinationRe.FindStringSubmatch(text); m != nil {
		d.Destination = strings.TrimSpace(m[1])
	}

	if m := budgetRe.FindStringSubmatch(text); m != nil {
		if amount, err := strconv.Atoi(m[1]); err == nil {
			d.Budget = float64(amount)
			if unit, ok := budgetUnits[m[2]]; ok {
				d.Budget *= unit
			}
		}
	}

	if m := travelersRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			d.Travelers = n
		}
	}

	for _, p := range preferenceKeywords {
		for _, w := range p.words {
			if strings.Contains(text, w) {
				d.Preferences = append(d.Preferences, p.tag)
				break
			}
		}
	}

	return d
}
