// Package chart derives screen-space bubble geometry from raw records: it
// owns the field selections, builds the scales for the current selection
// state, and drives the force relaxation that settles bubble positions.
package chart

import (
	"bubbleplot/internal/scale"
)

// None is the unset selection value for any of the four field choices.
const None = "none"

// EdgeMargin is how far, in pixels, bubble centers are kept from every
// viewport edge during relaxation.
const EdgeMargin = 30

// Record holds one data point's field values. Numeric fields are kept as
// strings and parsed where needed; values that fail to parse degrade to
// scale fallbacks.
type Record map[string]string

// Dimension describes how one field maps to display. An empty Domain
// marks the field continuous numeric; Range carries colors when the field
// is used as the color dimension.
type Dimension struct {
	Label  string   `yaml:"label"`
	Domain []string `yaml:"domain,omitempty"`
	Range  []string `yaml:"range,omitempty"`
}

// Dimensions is the per-field descriptor table.
type Dimensions map[string]Dimension

// Selections holds the four field choices driving the chart.
type Selections struct {
	Size  string `yaml:"size" json:"size"`
	Color string `yaml:"color" json:"color"`
	XAxis string `yaml:"x_axis" json:"x_axis"`
	YAxis string `yaml:"y_axis" json:"y_axis"`
}

func DefaultSelections() Selections {
	return Selections{Size: None, Color: None, XAxis: None, YAxis: None}
}

// Point is the derived state for one record. X and Y are mutated by every
// relaxation tick; the remaining fields are fixed at derivation time.
type Point struct {
	Index    int     `json:"index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	R        float64 `json:"r"`
	Fill     string  `json:"fill"`
	TargetX  float64 `json:"target_x"`
	TargetY  float64 `json:"target_y"`
	SizeVal  string  `json:"size_val"`
	ColorVal string  `json:"color_val"`
	XVal     string  `json:"x_val"`
	YVal     string  `json:"y_val"`
	Label    string  `json:"label"`
}

// LabelFunc produces the text drawn at a bubble's center.
type LabelFunc func(Record) string

// Chart maps records to points under the current selections.
type Chart struct {
	width, height float64
	records       []Record
	dims          Dimensions
	sel           Selections
	labelFn       LabelFunc

	points []*Point
	radius scale.Radius
	color  scale.Color
	xAxis  scale.Axis
	yAxis  scale.Axis
}

func New(width, height float64, records []Record, dims Dimensions) *Chart {
	c := &Chart{
		width:   width,
		height:  height,
		records: records,
		dims:    dims,
		sel:     DefaultSelections(),
	}
	c.derive()
	return c
}

func (c *Chart) Width() float64         { return c.width }
func (c *Chart) Height() float64        { return c.height }
func (c *Chart) Points() []*Point       { return c.points }
func (c *Chart) Selections() Selections { return c.sel }
func (c *Chart) Records() []Record      { return c.records }

// SetLabelFunc installs the bubble label generator and re-derives.
func (c *Chart) SetLabelFunc(fn LabelFunc) {
	c.labelFn = fn
	c.derive()
}

// SetSelections replaces all four choices at once and re-derives.
func (c *Chart) SetSelections(sel Selections) {
	c.sel = normalize(sel)
	c.derive()
}

// SetRecords replaces the data set and re-derives.
func (c *Chart) SetRecords(records []Record) {
	c.records = records
	c.derive()
}

// Resize changes the viewport and re-derives, since every scale range
// depends on the viewport span.
func (c *Chart) Resize(width, height float64) {
	c.width, c.height = width, height
	c.derive()
}

func normalize(sel Selections) Selections {
	if sel.Size == "" {
		sel.Size = None
	}
	if sel.Color == "" {
		sel.Color = None
	}
	if sel.XAxis == "" {
		sel.XAxis = None
	}
	if sel.YAxis == "" {
		sel.YAxis = None
	}
	return sel
}

// derive rebuilds points and scales from the records and the current
// selections. Every point starts at the viewport center; the relaxation
// moves it from there.
func (c *Chart) derive() {
	c.points = make([]*Point, len(c.records))
	cx, cy := c.width/2, c.height/2

	sizeVals := c.fieldValues(c.sel.Size)
	colorVals := c.fieldValues(c.sel.Color)
	xVals := c.fieldValues(c.sel.XAxis)
	yVals := c.fieldValues(c.sel.YAxis)

	c.radius = scale.NewRadius(sizeVals, c.height)
	colorDim := c.dims[c.sel.Color]
	c.color = scale.NewColor(colorDim.Domain, colorDim.Range, colorVals)
	c.xAxis = scale.NewAxis(c.dims[c.sel.XAxis].Domain, xVals, c.width)
	c.yAxis = scale.NewAxis(c.dims[c.sel.YAxis].Domain, yVals, c.height)

	for i, rec := range c.records {
		p := &Point{
			Index:    i,
			X:        cx,
			Y:        cy,
			SizeVal:  fieldValue(rec, c.sel.Size),
			ColorVal: fieldValue(rec, c.sel.Color),
			XVal:     fieldValue(rec, c.sel.XAxis),
			YVal:     fieldValue(rec, c.sel.YAxis),
		}
		p.R = c.radius.Map(p.SizeVal)
		p.Fill = c.color.Map(p.ColorVal)
		p.TargetX = c.xAxis.Map(p.XVal)
		p.TargetY = c.yAxis.Map(p.YVal)
		if c.labelFn != nil {
			p.Label = c.labelFn(rec)
		}
		c.points[i] = p
	}
}

// fieldValues collects the named field across all records. A None
// selection yields empty strings, which every scale degrades on.
func (c *Chart) fieldValues(field string) []string {
	vals := make([]string, len(c.records))
	if field == None {
		return vals
	}
	for i, rec := range c.records {
		vals[i] = rec[field]
	}
	return vals
}

func fieldValue(rec Record, field string) string {
	if field == None {
		return ""
	}
	return rec[field]
}
