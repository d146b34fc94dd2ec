package chart

import (
	"context"
	"testing"

	"bubbleplot/internal/force"
)

func testDims() Dimensions {
	return Dimensions{
		"kind": {
			Label:  "Kind",
			Domain: []string{"cat", "dog", "bird"},
			Range:  []string{"#e41a1c", "#377eb8", "#4daf4a"},
		},
		"age":    {Label: "Age"},
		"weight": {Label: "Weight"},
	}
}

func testRecords() []Record {
	return []Record{
		{"name": "mia", "kind": "cat", "age": "10", "weight": "4"},
		{"name": "rex", "kind": "dog", "age": "80", "weight": "30"},
		{"name": "kip", "kind": "bird", "age": "2", "weight": "0.1"},
	}
}

func TestPointCountMatchesRecords(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	if got := len(c.Points()); got != 3 {
		t.Fatalf("expected 3 points, got %d", got)
	}

	c.SetRecords(nil)
	if got := len(c.Points()); got != 0 {
		t.Fatalf("expected 0 points after clearing records, got %d", got)
	}
}

func TestDefaultSelectionsDegrade(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())

	for _, p := range c.Points() {
		if p.X != 400 || p.Y != 250 {
			t.Errorf("point %d not at viewport center: (%.1f, %.1f)", p.Index, p.X, p.Y)
		}
		if p.R != 500.0/40 {
			t.Errorf("point %d: expected fallback radius %.2f, got %.2f", p.Index, 500.0/40, p.R)
		}
		if p.Fill != "#aaa" {
			t.Errorf("point %d: expected fallback fill, got %s", p.Index, p.Fill)
		}
		if p.TargetX != 400 || p.TargetY != 250 {
			t.Errorf("point %d: expected center targets, got (%.1f, %.1f)", p.Index, p.TargetX, p.TargetY)
		}
	}
}

func TestContinuousAxisTargets(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	c.SetSelections(Selections{YAxis: "age"})

	pts := c.Points()
	// span 500, inset 40 each side, max age 80
	if got := pts[1].TargetY; got != 460 {
		t.Errorf("age=80: expected target y 460, got %.2f", got)
	}
	want := 40 + 10.0/80*(460-40)
	if got := pts[0].TargetY; got != want {
		t.Errorf("age=10: expected target y %.2f, got %.2f", want, got)
	}
}

func TestOrdinalAxisTargets(t *testing.T) {
	c := New(900, 500, testRecords(), testDims())
	c.SetSelections(Selections{XAxis: "kind"})

	pts := c.Points()
	// three bands over 900: centers 150, 450, 750
	wants := []float64{150, 450, 750}
	for i, want := range wants {
		if pts[i].TargetX != want {
			t.Errorf("point %d: expected target x %.0f, got %.2f", i, want, pts[i].TargetX)
		}
	}
}

func TestColorAndSizeSelections(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	c.SetSelections(Selections{Size: "weight", Color: "kind"})

	pts := c.Points()
	if pts[0].Fill != "#e41a1c" || pts[1].Fill != "#377eb8" || pts[2].Fill != "#4daf4a" {
		t.Errorf("ordinal fills wrong: %s %s %s", pts[0].Fill, pts[1].Fill, pts[2].Fill)
	}
	// max weight 30 maps to the upper radius bound
	if got := pts[1].R; got != 500.0/20 {
		t.Errorf("max weight: expected radius %.2f, got %.2f", 500.0/20, got)
	}
	if !(pts[0].R > pts[2].R) {
		t.Errorf("heavier record should get the bigger bubble: %.2f vs %.2f", pts[0].R, pts[2].R)
	}
}

func TestLabelFunc(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	c.SetLabelFunc(func(r Record) string { return r["name"] })

	pts := c.Points()
	if pts[0].Label != "mia" || pts[2].Label != "kip" {
		t.Errorf("labels not derived: %q %q", pts[0].Label, pts[2].Label)
	}
}

func TestResizeRederives(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	c.SetSelections(Selections{Size: "weight"})
	before := c.Points()[1].R

	c.Resize(800, 1000)
	after := c.Points()[1].R
	if after != 2*before {
		t.Errorf("radius range should scale with viewport height: %.2f -> %.2f", before, after)
	}
}

func TestRelaxClampsToViewport(t *testing.T) {
	c := New(600, 400, testRecords(), testDims())
	c.SetSelections(Selections{Size: "weight", XAxis: "kind", YAxis: "age"})

	stats, err := c.Relax(context.Background(), force.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("relax failed: %v", err)
	}
	if !stats.Converged {
		t.Errorf("expected convergence, alpha=%f after %d ticks", stats.Alpha, stats.Ticks)
	}

	for _, p := range c.Points() {
		if p.X < EdgeMargin || p.X > 600-EdgeMargin {
			t.Errorf("point %d x=%.2f outside [%d, %d]", p.Index, p.X, EdgeMargin, 600-EdgeMargin)
		}
		if p.Y < EdgeMargin || p.Y > 400-EdgeMargin {
			t.Errorf("point %d y=%.2f outside [%d, %d]", p.Index, p.Y, EdgeMargin, 400-EdgeMargin)
		}
	}
}

func TestRelaxObserverStops(t *testing.T) {
	c := New(600, 400, testRecords(), testDims())

	ticks := 0
	stats, err := c.Relax(context.Background(), force.DefaultConfig(), func(tick int, moved float64) bool {
		ticks++
		return ticks < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if ticks != 3 {
		t.Errorf("expected observer to stop the run at 3 ticks, got %d", ticks)
	}
	if stats.Converged {
		t.Error("run stopped early should not report convergence")
	}
}

func TestRelaxSupersededByCancel(t *testing.T) {
	c := New(600, 400, testRecords(), testDims())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Relax(ctx, force.DefaultConfig(), nil); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMalformedNumbersDegrade(t *testing.T) {
	records := []Record{
		{"age": "ten"},
		{"age": "80"},
	}
	c := New(800, 500, records, testDims())
	c.SetSelections(Selections{YAxis: "age", Size: "age"})

	pts := c.Points()
	if pts[0].TargetY != 250 {
		t.Errorf("malformed age should target span center, got %.2f", pts[0].TargetY)
	}
	if pts[0].R != 500.0/40 {
		t.Errorf("malformed size should use fallback radius, got %.2f", pts[0].R)
	}
	if pts[1].TargetY != 460 {
		t.Errorf("valid age should still map, got %.2f", pts[1].TargetY)
	}
}

func TestNormalizeEmptySelections(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())
	c.SetSelections(Selections{})
	sel := c.Selections()
	if sel.Size != None || sel.Color != None || sel.XAxis != None || sel.YAxis != None {
		t.Errorf("empty selections should normalize to %q, got %+v", None, sel)
	}
}

func TestAxisLegend(t *testing.T) {
	c := New(800, 500, testRecords(), testDims())

	if leg := c.XLegend(); leg.Prompt != "select x axis" {
		t.Errorf("unset x axis should show a prompt, got %+v", leg)
	}

	c.SetSelections(Selections{XAxis: "kind", YAxis: "age"})
	xl := c.XLegend()
	if xl.Prompt != "" || xl.Title != "Kind" || xl.Low != "low" || xl.High != "high" {
		t.Errorf("unexpected x legend: %+v", xl)
	}
	yl := c.YLegend()
	if yl.Title != "Age" {
		t.Errorf("unexpected y legend title: %q", yl.Title)
	}
}

func TestStepperMatchesRelax(t *testing.T) {
	c := New(600, 400, testRecords(), testDims())
	c.SetSelections(Selections{XAxis: "kind", YAxis: "age"})

	stepper, err := c.Stepper(force.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	for {
		if _, done := stepper.Step(); done {
			break
		}
	}

	stats := stepper.Stats()
	if !stats.Converged {
		t.Errorf("expected convergence, got %+v", stats)
	}
	if moved, done := stepper.Step(); !done || moved != 0 {
		t.Error("stepping a finished relaxation should be a no-op")
	}
	for _, p := range c.Points() {
		if p.X < EdgeMargin || p.X > 600-EdgeMargin || p.Y < EdgeMargin || p.Y > 400-EdgeMargin {
			t.Errorf("point %d escaped the viewport: (%.1f, %.1f)", p.Index, p.X, p.Y)
		}
	}
}
