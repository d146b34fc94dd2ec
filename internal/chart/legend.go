package chart

// AxisLegend is the presentational band labeling for one axis. With no
// selection a single prompt spans the axis; otherwise two static extreme
// labels are shown. The bands are fixed text, not derived from the data
// distribution.
type AxisLegend struct {
	Prompt string
	Title  string
	Low    string
	High   string
}

func (c *Chart) XLegend() AxisLegend {
	return c.axisLegend(c.sel.XAxis, "select x axis")
}

func (c *Chart) YLegend() AxisLegend {
	return c.axisLegend(c.sel.YAxis, "select y axis")
}

func (c *Chart) axisLegend(field, prompt string) AxisLegend {
	if field == None {
		return AxisLegend{Prompt: prompt}
	}
	title := field
	if dim, ok := c.dims[field]; ok && dim.Label != "" {
		title = dim.Label
	}
	return AxisLegend{Title: title, Low: "low", High: "high"}
}
