package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = filepath.Join("..", "..", "internal", "domain", "testdata", "fd_low_24h.txt")

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(t.Context(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_List(t *testing.T) {
	code, out, _ := runCLI(t, "-file", fixture, "-list")
	require.Equal(t, 0, code)

	var codes []string
	require.NoError(t, json.Unmarshal([]byte(out), &codes))
	assert.Equal(t, []string{"ABI", "CVG", "DEN", "MIA", "ORD", "SLC"}, codes)
}

func TestRun_Station(t *testing.T) {
	code, out, _ := runCLI(t, "-file", fixture, "-station", "ord")
	require.Equal(t, 0, code)

	var doc struct {
		Station string `json:"station"`
		Winds   []struct {
			Altitude  int `json:"altitude"`
			Direction int `json:"direction"`
			Speed     int `json:"speed"`
			Temp      int `json:"temp"`
		} `json:"winds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "ORD", doc.Station)
	require.Len(t, doc.Winds, 9)
	// 750839 at 30,000 ft wraps to 250 degrees at 108 kt.
	assert.Equal(t, 250, doc.Winds[6].Direction)
	assert.Equal(t, 108, doc.Winds[6].Speed)
	assert.Equal(t, -39, doc.Winds[6].Temp)
}

func TestRun_StationStructured(t *testing.T) {
	code, out, _ := runCLI(t, "-file", fixture, "-station", "SLC", "-structured")
	require.Equal(t, 0, code)

	var doc struct {
		Station  string `json:"station"`
		Readings []struct {
			Altitude int             `json:"altitude"`
			Wind     json.RawMessage `json:"wind"`
		} `json:"readings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Readings, 9)
	for _, r := range doc.Readings[:3] {
		assert.Equal(t, "null", string(r.Wind), "altitude %d", r.Altitude)
	}
	assert.NotEqual(t, "null", string(doc.Readings[3].Wind))
}

func TestRun_AllLowLayout(t *testing.T) {
	code, out, _ := runCLI(t, "-file", fixture, "-all", "-layout", "low")
	require.Equal(t, 0, code)

	var docs []struct {
		Station string            `json:"station"`
		Winds   []json.RawMessage `json:"winds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 6)
	for _, d := range docs {
		assert.Len(t, d.Winds, 6, d.Station)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no mode", []string{"-file", fixture}, 2, "exactly one of"},
		{"two modes", []string{"-file", fixture, "-list", "-station", "CVG"}, 2, "exactly one of"},
		{"bad layout", []string{"-file", fixture, "-list", "-layout", "high"}, 2, "unknown table layout"},
		{"unknown station", []string{"-file", fixture, "-station", "ZZZ"}, 3, "unknown station"},
		{"missing file", []string{"-file", "nope.txt", "-list"}, 1, "open table file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, out, stderr := runCLI(t, tc.args...)
			assert.Equal(t, tc.wantCode, code)
			assert.Empty(t, out)
			assert.Contains(t, stderr, tc.wantErr)
		})
	}
}
