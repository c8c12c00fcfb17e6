// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// format.go - Shared number formatting for attack statistics

package util

import (
	"strconv"
	"strings"
)

// FormatBias renders a signed bias with an explicit sign and six
// decimals, e.g. "+0.042267". Every surface that prints a bias goes
// through here so rankings line up column for column.
func FormatBias(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// FormatProbability renders a fraction in [0,1] with six decimals.
func FormatProbability(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// FormatQuality renders a trail quality score using the shortest
// representation that round-trips, so exact dyadic scores like
// 0.019775390625 print in full and the invalid sentinel prints as -1.
func FormatQuality(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatPercent renders a fraction in [0,1] as a percentage with two
// decimals, e.g. "45.77%".
func FormatPercent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
}
