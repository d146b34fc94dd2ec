// Package force implements the iterative relaxation that settles bubbles:
// per-tick attraction toward each body's target position plus pairwise
// collision resolution, with an alpha schedule that cools the system until
// it converges.
package force

import (
	"context"
	"fmt"
	"math"
)

// Body is one particle in the relaxation. X/Y and the velocities are
// mutated every tick; R and the targets are fixed by the caller.
type Body struct {
	X, Y   float64
	VX, VY float64
	R      float64
	TX, TY float64
}

type Config struct {
	Strength      float64 // attraction strength per axis
	Padding       float64 // extra separation added to each collision radius
	Alpha         float64 // initial temperature
	AlphaMin      float64 // convergence threshold
	AlphaDecay    float64 // per-tick cooling fraction
	VelocityDecay float64 // velocity retained after each integration
	MaxTicks      int     // hard stop
}

func DefaultConfig() Config {
	return Config{
		Strength:      0.1,
		Padding:       3,
		Alpha:         1,
		AlphaMin:      0.001,
		AlphaDecay:    1 - math.Pow(0.001, 1.0/300),
		VelocityDecay: 0.6,
		MaxTicks:      1000,
	}
}

type Simulation struct {
	bodies []*Body
	cfg    Config
	alpha  float64
	ticks  int
}

func New(bodies []*Body, cfg Config) (*Simulation, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Simulation{bodies: bodies, cfg: cfg, alpha: cfg.Alpha}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Alpha <= 0 {
		return fmt.Errorf("alpha must be positive, got %f", cfg.Alpha)
	}
	if cfg.AlphaMin <= 0 || cfg.AlphaMin >= cfg.Alpha {
		return fmt.Errorf("alpha min must be in (0, alpha), got %f", cfg.AlphaMin)
	}
	if cfg.AlphaDecay <= 0 || cfg.AlphaDecay >= 1 {
		return fmt.Errorf("alpha decay must be in (0, 1), got %f", cfg.AlphaDecay)
	}
	if cfg.VelocityDecay <= 0 || cfg.VelocityDecay > 1 {
		return fmt.Errorf("velocity decay must be in (0, 1], got %f", cfg.VelocityDecay)
	}
	if cfg.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %f", cfg.Padding)
	}
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("max ticks must be positive, got %d", cfg.MaxTicks)
	}
	return nil
}

func (s *Simulation) Alpha() float64  { return s.alpha }
func (s *Simulation) Ticks() int      { return s.ticks }
func (s *Simulation) Bodies() []*Body { return s.bodies }
func (s *Simulation) Converged() bool { return s.alpha < s.cfg.AlphaMin }

// Step advances the relaxation by one tick and reports the total position
// movement, a cheap progress signal for observers.
func (s *Simulation) Step() float64 {
	s.alpha -= s.alpha * s.cfg.AlphaDecay

	for _, b := range s.bodies {
		b.VX += (b.TX - b.X) * s.cfg.Strength * s.alpha
		b.VY += (b.TY - b.Y) * s.cfg.Strength * s.alpha
	}

	s.collide()

	moved := 0.0
	for _, b := range s.bodies {
		b.VX *= s.cfg.VelocityDecay
		b.VY *= s.cfg.VelocityDecay
		b.X += b.VX
		b.Y += b.VY
		moved += math.Hypot(b.VX, b.VY)
	}

	s.ticks++
	return moved
}

// collide pushes apart every overlapping pair, splitting the displacement
// in proportion to the other body's radius so small bubbles yield to big
// ones.
func (s *Simulation) collide() {
	n := len(s.bodies)
	for i := 0; i < n; i++ {
		bi := s.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := s.bodies[j]
			minDist := bi.R + bj.R + s.cfg.Padding
			dx := bj.X - bi.X
			dy := bj.Y - bi.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				// Coincident centers; separate along x with a nudge
				// keyed to the pair so repeated ticks stay stable.
				dx, dist = 1e-6*float64(j-i), 1e-6*float64(j-i)
			}
			overlap := (minDist - dist) / dist
			wi := bj.R / (bi.R + bj.R)
			bi.X -= dx * overlap * wi
			bi.Y -= dy * overlap * wi
			bj.X += dx * overlap * (1 - wi)
			bj.Y += dy * overlap * (1 - wi)
		}
	}
}

// Run steps the simulation until convergence, MaxTicks, context
// cancellation, or the callback returning false. The callback runs after
// every tick with the tick index and the movement reported by Step;
// starting a new Run with a cancelled predecessor is how a stale
// relaxation is superseded.
func (s *Simulation) Run(ctx context.Context, callback func(tick int, moved float64) bool) error {
	for !s.Converged() && s.ticks < s.cfg.MaxTicks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		moved := s.Step()
		if callback != nil && !callback(s.ticks, moved) {
			return nil
		}
	}
	return nil
}
