// Package render emits the laid-out chart as SVG: one circle and one
// centered label per point, plus the static axis legend bands.
package render

import (
	"fmt"
	"os"
	"strings"

	"bubbleplot/internal/chart"
)

type Options struct {
	Background string
	Outline    string
	TextColor  string
	LegendFill string
	FontFamily string
	FontSize   float64
}

func DefaultOptions() Options {
	return Options{
		Background: "#ffffff",
		Outline:    "#333333",
		TextColor:  "#222222",
		LegendFill: "#888888",
		FontFamily: "sans-serif",
		FontSize:   12,
	}
}

// SVG renders the chart's current point geometry. Positions are used as
// they stand; run the relaxation first for a settled layout.
func SVG(c *chart.Chart, opts Options) string {
	w, h := c.Width(), c.Height()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="%s">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, opts.FontFamily, opts.Background))

	writeXLegend(&sb, c.XLegend(), w, h, opts)
	writeYLegend(&sb, c.YLegend(), h, opts)

	sb.WriteString(fmt.Sprintf("<g stroke=\"%s\" stroke-width=\"1\">\n", opts.Outline))
	for _, p := range c.Points() {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X, p.Y, p.R, p.Fill))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s" text-anchor="middle" dominant-baseline="middle">
`, opts.TextColor))
	for _, p := range c.Points() {
		if p.Label == "" {
			continue
		}
		size := labelSize(p.R, opts.FontSize)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.1f">%s</text>
`, p.X, p.Y, size, escape(p.Label)))
	}
	sb.WriteString("</g>\n</svg>\n")

	return sb.String()
}

// WriteFile renders the chart and writes it to path.
func WriteFile(path string, c *chart.Chart, opts Options) error {
	if err := os.WriteFile(path, []byte(SVG(c, opts)), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeXLegend(sb *strings.Builder, leg chart.AxisLegend, w, h float64, opts Options) {
	y := h - 8
	if leg.Prompt != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" text-anchor="middle">%s</text>
`, w/2, y, opts.LegendFill, opts.FontSize, escape(leg.Prompt)))
		return
	}
	for _, l := range []struct {
		x    float64
		text string
	}{
		{w * 0.25, leg.Low},
		{w * 0.5, leg.Title},
		{w * 0.75, leg.High},
	} {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" text-anchor="middle">%s</text>
`, l.x, y, opts.LegendFill, opts.FontSize, escape(l.text)))
	}
}

func writeYLegend(sb *strings.Builder, leg chart.AxisLegend, h float64, opts Options) {
	x := 14.0
	if leg.Prompt != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">%s</text>
`, x, h/2, opts.LegendFill, opts.FontSize, x, h/2, escape(leg.Prompt)))
		return
	}
	for _, l := range []struct {
		y    float64
		text string
	}{
		{h * 0.75, leg.Low},
		{h * 0.5, leg.Title},
		{h * 0.25, leg.High},
	} {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">%s</text>
`, x, l.y, opts.LegendFill, opts.FontSize, x, l.y, escape(l.text)))
	}
}

// labelSize keeps labels inside their bubble while capping at the base
// font size.
func labelSize(r, base float64) float64 {
	size := r * 0.8
	if size > base {
		size = base
	}
	if size < 6 {
		size = 6
	}
	return size
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }
