package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// wrapThreshold is the raw direction (DD*10) at and above which a high
	// tier encodes a speed of 100 kt or more.
	wrapThreshold = 400
	wrapDirection = 500
	wrapSpeed     = 100

	lightAndVariable = 99
)

// DecodeTier decodes one raw column with the tier's rule. A column without
// content yields a nil reading and no error. "9900" decodes as light and
// variable (direction 0, speed 0) in every tier; the high-tier 100 kt wrap is
// not applied to it.
func DecodeTier(t Tier, raw string) (*WindReading, error) {
	if !hasContent(raw) {
		return nil, nil
	}
	if len(raw) < minTierWidth {
		return nil, &TierError{Altitude: t.Altitude, Raw: raw, Err: ErrMalformedTier}
	}

	dd, okDir := parseTwoDigits(raw[0:2])
	ss, okSpd := parseTwoDigits(raw[2:4])
	if !okDir || !okSpd {
		return nil, &TierError{Altitude: t.Altitude, Raw: raw, Err: ErrMalformedTier}
	}
	rest := raw[4:]

	var (
		temp *int
		err  error
	)
	switch t.Rule {
	case RuleLow:
	case RuleMid:
		temp, err = parseTemperature(rest, false)
	case RuleHigh:
		temp, err = parseTemperature(rest, true)
	default:
		return nil, &TierError{Altitude: t.Altitude, Raw: raw, Err: ErrMalformedTier}
	}
	if err != nil {
		return nil, &TierError{Altitude: t.Altitude, Raw: raw, Err: err}
	}

	if dd == lightAndVariable && ss == 0 {
		return &WindReading{Temperature: temp, LightAndVariable: true}, nil
	}

	direction := dd * 10
	speed := ss
	if t.Rule == RuleHigh && direction >= wrapThreshold {
		direction -= wrapDirection
		speed += wrapSpeed
	}

	return &WindReading{Direction: direction, Speed: speed, Temperature: temp}, nil
}

// hasContent reports whether a column starts with a word character. Blank
// columns mean no forecast for the tier.
func hasContent(raw string) bool {
	r, size := utf8.DecodeRuneInString(raw)
	return size > 0 && isWordRune(r)
}

func parseTwoDigits(s string) (int, bool) {
	if len(s) != 2 || !isASCIIDigit(s[0]) || !isASCIIDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// parseTemperature reads the trailing temperature field. Mid tiers carry an
// explicit sign; high tiers are unsigned magnitudes of a negative value. A
// blank field means no temperature was forecast.
func parseTemperature(s string, impliedNegative bool) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if impliedNegative {
		for i := 0; i < len(s); i++ {
			if !isASCIIDigit(s[i]) {
				return nil, ErrMalformedTier
			}
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, ErrMalformedTier
	}
	if impliedNegative {
		v = -v
	}
	return &v, nil
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
