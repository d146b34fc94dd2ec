package chart

import (
	"context"

	"bubbleplot/internal/force"
)

// TickFunc observes one relaxation tick over the clamped points. Returning
// false stops the run early.
type TickFunc func(tick int, moved float64) bool

// LayoutStats summarizes a finished relaxation.
type LayoutStats struct {
	Ticks     int     `json:"ticks"`
	Alpha     float64 `json:"alpha"`
	Converged bool    `json:"converged"`
}

// Stepper drives the relaxation one tick at a time, for callers that
// animate it. Each Step resynchronizes the chart's points from the
// simulation, clamped into the viewport interior.
type Stepper struct {
	c      *Chart
	sim    *force.Simulation
	bodies []*force.Body
	max    int
}

// Stepper starts a relaxation over the chart's current points.
func (c *Chart) Stepper(cfg force.Config) (*Stepper, error) {
	bodies := make([]*force.Body, len(c.points))
	for i, p := range c.points {
		bodies[i] = &force.Body{
			X: p.X, Y: p.Y,
			R:  p.R,
			TX: p.TargetX, TY: p.TargetY,
		}
	}
	sim, err := force.New(bodies, cfg)
	if err != nil {
		return nil, err
	}
	return &Stepper{c: c, sim: sim, bodies: bodies, max: cfg.MaxTicks}, nil
}

// Step advances one tick and reports the movement it produced. done is
// true once the simulation has converged or exhausted its tick budget;
// further calls are no-ops.
func (s *Stepper) Step() (moved float64, done bool) {
	if s.Done() {
		return 0, true
	}
	moved = s.sim.Step()
	s.c.syncFromBodies(s.bodies)
	return moved, s.Done()
}

func (s *Stepper) Done() bool {
	return s.sim.Converged() || s.sim.Ticks() >= s.max
}

func (s *Stepper) Alpha() float64 { return s.sim.Alpha() }
func (s *Stepper) Ticks() int     { return s.sim.Ticks() }

// Stats summarizes the relaxation so far.
func (s *Stepper) Stats() LayoutStats {
	return LayoutStats{
		Ticks:     s.sim.Ticks(),
		Alpha:     s.sim.Alpha(),
		Converged: s.sim.Converged(),
	}
}

// Relax runs the force layout over the chart's points until convergence.
// Each tick the point positions are resynchronized from the simulation
// bodies and clamped into the viewport interior before the observer sees
// them. A run is superseded by cancelling its context and starting a new
// one; points keep whatever positions the last completed tick left
// behind.
func (c *Chart) Relax(ctx context.Context, cfg force.Config, onTick TickFunc) (LayoutStats, error) {
	stepper, err := c.Stepper(cfg)
	if err != nil {
		return LayoutStats{}, err
	}

	for !stepper.Done() {
		select {
		case <-ctx.Done():
			return stepper.Stats(), ctx.Err()
		default:
		}

		moved, _ := stepper.Step()
		if onTick != nil && !onTick(stepper.Ticks(), moved) {
			break
		}
	}
	return stepper.Stats(), nil
}

// syncFromBodies clamps body positions into the viewport interior and
// writes them back to both sides, so the simulation continues from the
// clamped geometry.
func (c *Chart) syncFromBodies(bodies []*force.Body) {
	for i, b := range bodies {
		b.X = clamp(b.X, EdgeMargin, c.width-EdgeMargin)
		b.Y = clamp(b.Y, EdgeMargin, c.height-EdgeMargin)
		c.points[i].X = b.X
		c.points[i].Y = b.Y
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
