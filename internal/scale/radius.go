package scale

// Radius maps a size-source value to a bubble radius. The domain is
// [1, max observed value] and the range [height/100, height/20]; when no
// value parses or the max is not positive every lookup returns the fixed
// fallback radius height/40.
type Radius struct {
	lin      Linear
	fallback float64
	degraded bool
}

func NewRadius(vals []string, viewportHeight float64) Radius {
	r := Radius{fallback: viewportHeight / 40}
	max := maxNumber(vals)
	if len(vals) == 0 || max <= 0 {
		r.degraded = true
		return r
	}
	r.lin = NewLinear(1, max, viewportHeight/100, viewportHeight/20)
	return r
}

func (r Radius) Map(s string) float64 {
	if r.degraded {
		return r.fallback
	}
	v, ok := parseNumber(s)
	if !ok {
		return r.fallback
	}
	return r.lin.Map(v)
}

// Fallback reports the radius used when the scale is degraded or a value
// does not parse.
func (r Radius) Fallback() float64 { return r.fallback }
