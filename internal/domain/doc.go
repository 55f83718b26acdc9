// Package domain decodes National Weather Service winds and temperatures aloft
// forecasts (the "FD" / FB table) into per-station wind readings.
//
// # Data Source
//
// The forecast table is published by the Aviation Weather Center at
// https://aviationweather.gov as a preformatted text block inside an HTML page.
// The fetch adapter extracts that block and hands it to this package as lines of
// plain text. Header and legend lines are part of the block and are skipped.
//
// # Column Layout
//
// Each data line is a station identifier followed by one fixed-width column per
// altitude tier, separated by single spaces:
//
//	CVG 1930 2236+09 2135+04 2146-02 2162-14 2280-27 229142 228851 228459
//	    3000 6000    9000    12000   18000   24000   30000  34000  39000
//
// Widths are 4 characters at 3,000 ft, 7 from 6,000 to 24,000 ft and 6 from
// 30,000 to 39,000 ft. The widths are fixed by the publisher; they are never
// inferred from the data. See [Layout].
//
// # Tier Encodings
//
// Low tier (3,000 ft), "DDSS":
//
//	DD  direction in tens of degrees    19 → 190°
//	SS  speed in knots                  30 → 30 kt
//	No temperature is forecast at 3,000 ft.
//
// Mid tiers (6,000–24,000 ft), "DDSS±TT":
//
//	Same direction and speed fields, followed by a signed temperature in °C.
//
// High tiers (30,000–39,000 ft), "DDSSTT":
//
//	Temperatures above 24,000 ft are always negative, so the sign is omitted:
//	"228851" → 220°, 88 kt, -51 °C.
//	Speeds of 100 kt or more are encoded by adding 50 to DD and dropping the
//	hundreds digit: "731055" → DD 73 ≥ 40 → 230°, 110 kt, -55 °C.
//
// Missing data:
//
//	A blank column (station elevation above the tier, or no forecast) has no
//	reading. "9900" means light and variable (under 5 kt).
//
// # Station Codes
//
// Lookups trim and upper-case the requested code and compare it to the table
// without regard to case. The decoded forecast keeps the code as written in the
// table.
package domain
