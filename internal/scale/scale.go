// Package scale maps raw field values to screen-space quantities: bubble
// radii, fill colors, and axis positions. Mappings never fail; values the
// scale cannot place fall back to a fixed constant or the span center.
package scale

import (
	"math"
	"strconv"
	"strings"
)

// Linear maps [d0, d1] to [r0, r1] without clamping.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (l Linear) Map(v float64) float64 {
	span := l.d1 - l.d0
	if span == 0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (v-l.d0)/span*(l.r1-l.r0)
}

// parseNumber parses s as a finite float. The bool result is false for
// malformed or non-finite input; callers degrade to their fallback.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// maxNumber returns the largest parseable value in vals, or 0 when none
// parse.
func maxNumber(vals []string) float64 {
	max := 0.0
	for _, s := range vals {
		if v, ok := parseNumber(s); ok && v > max {
			max = v
		}
	}
	return max
}
