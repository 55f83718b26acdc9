package domain

import (
	"errors"
	"fmt"
	"unicode"
)

// Rule selects how a tier column is decoded.
type Rule int

const (
	// RuleLow decodes "DDSS" with no temperature.
	RuleLow Rule = iota + 1
	// RuleMid decodes "DDSS±TT" with a signed temperature.
	RuleMid
	// RuleHigh decodes "DDSSTT" with the 100 kt wrap and an implied negative temperature.
	RuleHigh
)

func (r Rule) String() string {
	switch r {
	case RuleLow:
		return "low"
	case RuleMid:
		return "mid"
	case RuleHigh:
		return "high"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// Tier is one altitude column of the table.
type Tier struct {
	Altitude int // feet
	Width    int // characters
	Rule     Rule
}

// minTierWidth covers the direction and speed digit pairs every rule reads.
const minTierWidth = 4

// Layout is the column contract of a forecast table: the station code followed
// by one fixed-width column per tier, each preceded by a single whitespace
// character. A Layout is immutable once built.
type Layout struct {
	name  string
	tiers []Tier
}

// Layout names accepted by LayoutByName.
const (
	LayoutExtended = "extended"
	LayoutLow      = "low"
)

var extendedTiers = []Tier{
	{Altitude: 3000, Width: 4, Rule: RuleLow},
	{Altitude: 6000, Width: 7, Rule: RuleMid},
	{Altitude: 9000, Width: 7, Rule: RuleMid},
	{Altitude: 12000, Width: 7, Rule: RuleMid},
	{Altitude: 18000, Width: 7, Rule: RuleMid},
	{Altitude: 24000, Width: 7, Rule: RuleMid},
	{Altitude: 30000, Width: 6, Rule: RuleHigh},
	{Altitude: 34000, Width: 6, Rule: RuleHigh},
	{Altitude: 39000, Width: 6, Rule: RuleHigh},
}

// ExtendedLayout is the published low-level table: 3,000 to 39,000 ft.
func ExtendedLayout() Layout {
	return Layout{name: LayoutExtended, tiers: extendedTiers}
}

// LowLayout stops at 24,000 ft. Columns beyond it are ignored.
func LowLayout() Layout {
	return Layout{name: LayoutLow, tiers: extendedTiers[:6]}
}

// LayoutByName resolves a configured layout name.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case LayoutExtended:
		return ExtendedLayout(), nil
	case LayoutLow:
		return LowLayout(), nil
	default:
		return Layout{}, fmt.Errorf("unknown table layout %q", name)
	}
}

// NewLayout builds a custom layout. Tiers must be in strictly ascending
// altitude order and wide enough to hold a direction and a speed.
func NewLayout(name string, tiers ...Tier) (Layout, error) {
	if len(tiers) == 0 {
		return Layout{}, errors.New("layout needs at least one tier")
	}
	for i, t := range tiers {
		if t.Width < minTierWidth {
			return Layout{}, fmt.Errorf("tier %d ft: width %d below %d", t.Altitude, t.Width, minTierWidth)
		}
		if t.Rule < RuleLow || t.Rule > RuleHigh {
			return Layout{}, fmt.Errorf("tier %d ft: invalid %s", t.Altitude, t.Rule)
		}
		if i > 0 && t.Altitude <= tiers[i-1].Altitude {
			return Layout{}, fmt.Errorf("tier %d ft: altitudes must ascend", t.Altitude)
		}
	}
	return Layout{name: name, tiers: append([]Tier(nil), tiers...)}, nil
}

// Name returns the layout name.
func (l Layout) Name() string {
	return l.name
}

// Tiers returns a copy of the layout's tiers.
func (l Layout) Tiers() []Tier {
	return append([]Tier(nil), l.tiers...)
}

// Fields are the raw substrings of one table line.
type Fields struct {
	Code    string
	Columns []string // one per tier, in layout order
}

// Extract splits line according to the layout. It returns false for lines that
// do not conform (headers, legends, blank or short lines). The match is
// anchored at the start of the line; anything after the last tier is ignored.
func (l Layout) Extract(line string) (Fields, bool) {
	if len(l.tiers) == 0 {
		return Fields{}, false
	}
	runes := []rune(line)

	pos := 0
	for pos < len(runes) && isWordRune(runes[pos]) {
		pos++
	}
	if pos == 0 {
		return Fields{}, false
	}
	code := string(runes[:pos])

	columns := make([]string, len(l.tiers))
	for i, t := range l.tiers {
		if pos >= len(runes) || !unicode.IsSpace(runes[pos]) {
			return Fields{}, false
		}
		pos++

		end := pos + t.Width
		if end > len(runes) {
			return Fields{}, false
		}
		for _, r := range runes[pos:end] {
			if r == '\n' {
				return Fields{}, false
			}
		}
		columns[i] = string(runes[pos:end])
		pos = end
	}

	return Fields{Code: code, Columns: columns}, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
