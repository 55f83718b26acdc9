package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCVGLine = "CVG 1930 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 228459"

func TestLayout_Extract(t *testing.T) {
	layout := ExtendedLayout()

	t.Run("station line", func(t *testing.T) {
		fields, ok := layout.Extract(testCVGLine)
		require.True(t, ok)
		assert.Equal(t, "CVG", fields.Code)
		assert.Equal(t, []string{
			"1930", "2236+09", "2135+04", "2146-02", "2162-14", "2280-27", "229142", "228851", "228459",
		}, fields.Columns)
	})

	t.Run("blank leading tiers", func(t *testing.T) {
		fields, ok := layout.Extract("DEN              3608-03 3115-08 2930-19 2845-31 286045 287453 780158")
		require.True(t, ok)
		assert.Equal(t, "DEN", fields.Code)
		assert.Equal(t, "    ", fields.Columns[0])
		assert.Equal(t, "       ", fields.Columns[1])
		assert.Equal(t, "3608-03", fields.Columns[2])
	})

	t.Run("trailing content ignored", func(t *testing.T) {
		fields, ok := layout.Extract(testCVGLine + " 999999 trailing\n")
		require.True(t, ok)
		assert.Equal(t, "228459", fields.Columns[8])
	})

	t.Run("tab separator", func(t *testing.T) {
		fields, ok := layout.Extract("CVG\t1930 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 228459")
		require.True(t, ok)
		assert.Equal(t, "CVG", fields.Code)
	})

	t.Run("lowercase code kept", func(t *testing.T) {
		fields, ok := layout.Extract("cvg 1930 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 228459")
		require.True(t, ok)
		assert.Equal(t, "cvg", fields.Code)
	})

	rejected := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"blank", "        "},
		{"header", "FT  3000    6000    9000   12000   18000   24000  30000  34000  39000"},
		{"valid line", "VALID 160000Z   FOR USE 2000-0600Z. TEMPS NEG ABV 24000"},
		{"data based", "DATA BASED ON 151200Z    "},
		{"product id", "FD1US1"},
		{"parenthesised", "(Extracted from FBUS31 KWNO 151359)"},
		{"short line", "CVG 1930 2236+09 2135+04"},
		{"missing last column character", testCVGLine[:len(testCVGLine)-1]},
		{"misaligned column", "CVG 19300 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 228459"},
		{"leading space", " " + testCVGLine},
		{"newline inside column", "CVG 1930 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 2284\n9"},
	}
	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, ok := layout.Extract(tt.line)
			assert.False(t, ok)
		})
	}
}

func TestLayout_LowStopsAt24000(t *testing.T) {
	layout := LowLayout()

	fields, ok := layout.Extract(testCVGLine)
	require.True(t, ok)
	assert.Len(t, fields.Columns, 6)
	assert.Equal(t, "2280-27", fields.Columns[5])

	fields, ok = layout.Extract("CVG 1930 2236+09 2135+04 2146-02 2162-14 2280-27")
	require.True(t, ok)
	assert.Len(t, fields.Columns, 6)

	_, ok = ExtendedLayout().Extract("CVG 1930 2236+09 2135+04 2146-02 2162-14 2280-27")
	assert.False(t, ok)
}

func TestLayoutByName(t *testing.T) {
	extended, err := LayoutByName("extended")
	require.NoError(t, err)
	assert.Equal(t, "extended", extended.Name())
	assert.Len(t, extended.Tiers(), 9)

	low, err := LayoutByName("low")
	require.NoError(t, err)
	assert.Len(t, low.Tiers(), 6)

	_, err = LayoutByName("high")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high")
}

func TestExtendedLayout_Tiers(t *testing.T) {
	tiers := ExtendedLayout().Tiers()

	altitudes := make([]int, len(tiers))
	widths := make([]int, len(tiers))
	for i, tier := range tiers {
		altitudes[i] = tier.Altitude
		widths[i] = tier.Width
	}
	assert.Equal(t, []int{3000, 6000, 9000, 12000, 18000, 24000, 30000, 34000, 39000}, altitudes)
	assert.Equal(t, []int{4, 7, 7, 7, 7, 7, 6, 6, 6}, widths)
	assert.Equal(t, RuleLow, tiers[0].Rule)
	assert.Equal(t, RuleMid, tiers[5].Rule)
	assert.Equal(t, RuleHigh, tiers[8].Rule)

	// Mutating the copy must not leak into the layout.
	tiers[0].Width = 99
	assert.Equal(t, 4, ExtendedLayout().Tiers()[0].Width)
}

func TestNewLayout(t *testing.T) {
	t.Run("custom layout", func(t *testing.T) {
		layout, err := NewLayout("two",
			Tier{Altitude: 3000, Width: 4, Rule: RuleLow},
			Tier{Altitude: 6000, Width: 7, Rule: RuleMid},
		)
		require.NoError(t, err)

		fields, ok := layout.Extract("CVG 1930 2236+09")
		require.True(t, ok)
		assert.Equal(t, []string{"1930", "2236+09"}, fields.Columns)
	})

	invalid := []struct {
		name  string
		tiers []Tier
		want  string
	}{
		{"no tiers", nil, "at least one tier"},
		{"narrow tier", []Tier{{Altitude: 3000, Width: 3, Rule: RuleLow}}, "width"},
		{"unknown rule", []Tier{{Altitude: 3000, Width: 4}}, "invalid"},
		{"descending", []Tier{
			{Altitude: 6000, Width: 7, Rule: RuleMid},
			{Altitude: 3000, Width: 4, Rule: RuleLow},
		}, "ascend"},
		{"duplicate", []Tier{
			{Altitude: 3000, Width: 4, Rule: RuleLow},
			{Altitude: 3000, Width: 4, Rule: RuleLow},
		}, "ascend"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout("bad", tt.tiers...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "low", RuleLow.String())
	assert.Equal(t, "mid", RuleMid.String())
	assert.Equal(t, "high", RuleHigh.String())
	assert.Equal(t, "rule(0)", Rule(0).String())
}
