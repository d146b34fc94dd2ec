package viz

import (
	"strings"
	"testing"
)

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(40, 20, 400, 200)
	c.DrawCircle(200, 100, 30, 'o')

	out := c.String()
	if !strings.Contains(out, "o") {
		t.Fatal("expected circle cells in output")
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	// center cell: world (200,100) -> col 20, row 10
	if lines[10][20] != 'o' {
		t.Error("center cell not set")
	}
	if lines[0][0] != ' ' {
		t.Error("far corner should stay empty")
	}
}

func TestCanvasClipsOutOfBounds(t *testing.T) {
	c := NewCanvas(10, 10, 100, 100)
	c.DrawCircle(-50, -50, 10, 'x')
	c.DrawCircle(500, 500, 40, 'x')
	if strings.Contains(c.String(), "x") {
		t.Error("off-canvas circles should not draw")
	}
}

func TestCanvasClearResets(t *testing.T) {
	c := NewCanvas(10, 10, 100, 100)
	c.DrawCircle(50, 50, 20, '#')
	c.Clear()
	if strings.Contains(c.String(), "#") {
		t.Error("clear should wipe the grid")
	}
}
