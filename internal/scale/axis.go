package scale

// AxisInset is the margin, in pixels, kept on both ends of a continuous
// axis span.
const AxisInset = 40

// Axis places a field value along one viewport dimension. A non-empty
// domain makes the axis ordinal: the k-th of N categories maps to the
// center of the k-th equal band of the span. An empty domain makes it
// continuous: parsed values are mapped linearly from [0, max observed]
// into the inset span. Anything the axis cannot place lands at the span
// center.
type Axis struct {
	span    float64
	bands   map[string]float64
	lin     Linear
	numeric bool
}

// NewAxis builds an axis over span. domain is the declared category list
// (empty for continuous); vals are the observed source values used to fix
// the continuous extent.
func NewAxis(domain []string, vals []string, span float64) Axis {
	a := Axis{span: span}
	if len(domain) > 0 {
		a.bands = make(map[string]float64, len(domain))
		width := span / float64(len(domain))
		for i, cat := range domain {
			a.bands[cat] = width*float64(i) + width/2
		}
		return a
	}
	max := maxNumber(vals)
	if max > 0 {
		a.numeric = true
		a.lin = NewLinear(0, max, AxisInset, span-AxisInset)
	}
	return a
}

func (a Axis) Map(s string) float64 {
	if a.bands != nil {
		if pos, ok := a.bands[s]; ok {
			return pos
		}
		return a.span / 2
	}
	if !a.numeric {
		return a.span / 2
	}
	v, ok := parseNumber(s)
	if !ok {
		return a.span / 2
	}
	return a.lin.Map(v)
}

// Ordinal reports whether the axis maps declared categories rather than
// numbers.
func (a Axis) Ordinal() bool { return a.bands != nil }
