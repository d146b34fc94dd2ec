package scale

import (
	"github.com/lucasb-eyer/go-colorful"
)

// FallbackFill is the fill used for values the color scale cannot place.
const FallbackFill = "#aaa"

// Color assigns a fill to a color-source value. With a declared domain the
// scale is ordinal: domain[k] maps to range[k]. With an empty domain and at
// least two range colors the scale blends continuously in Lab space between
// the first and last range entries across [0, max observed].
type Color struct {
	lookup map[string]string
	lo, hi colorful.Color
	max    float64
	ramp   bool
}

func NewColor(domain, rng []string, vals []string) Color {
	c := Color{}
	if len(domain) > 0 {
		c.lookup = make(map[string]string, len(domain))
		for i, cat := range domain {
			if i < len(rng) {
				c.lookup[cat] = rng[i]
			}
		}
		return c
	}
	if len(rng) < 2 {
		return c
	}
	lo, errLo := colorful.Hex(rng[0])
	hi, errHi := colorful.Hex(rng[len(rng)-1])
	max := maxNumber(vals)
	if errLo != nil || errHi != nil || max <= 0 {
		return c
	}
	c.lo, c.hi, c.max, c.ramp = lo, hi, max, true
	return c
}

func (c Color) Map(s string) string {
	if c.lookup != nil {
		if fill, ok := c.lookup[s]; ok {
			return fill
		}
		return FallbackFill
	}
	if !c.ramp {
		return FallbackFill
	}
	v, ok := parseNumber(s)
	if !ok {
		return FallbackFill
	}
	t := v / c.max
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return c.lo.BlendLab(c.hi, t).Clamped().Hex()
}
