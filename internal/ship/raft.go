package ship

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/rng"
)

// Raft describes the procedurally generated lattice ship: a grid of points
// joined to their horizontal, vertical and diagonal neighbours.
type Raft struct {
	Columns int
	Rows    int
	Spacing float32
	// Origin is the position of the bottom-left point.
	Origin    mgl32.Vec2
	PointMass float32
	// WeakSpringFraction is the share of springs that get a reduced
	// breaking elongation, so damage spreads unevenly.
	WeakSpringFraction float32
}

// DefaultRaft returns a raft floating at the centre of the world.
func DefaultRaft() Raft {
	return Raft{
		Columns:            40,
		Rows:               6,
		Spacing:            1.0,
		Origin:             mgl32.Vec2{-20, -2},
		PointMass:          500,
		WeakSpringFraction: 0.1,
	}
}

const (
	springBreakingElongation     = float32(0.35)
	weakSpringBreakingElongation = float32(0.12)
)

// build lays out the raft's points and springs.
func (r Raft) build(random rng.Source) ([]point, []spring) {
	cols := max(r.Columns, 1)
	rows := max(r.Rows, 1)

	points := make([]point, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			points = append(points, point{
				pos:  r.Origin.Add(mgl32.Vec2{float32(col) * r.Spacing, float32(row) * r.Spacing}),
				mass: r.PointMass,
			})
		}
	}
	index := func(col, row int) gadgets.PointIndex {
		return gadgets.PointIndex(row*cols + col)
	}

	var springs []spring
	connect := func(a, b gadgets.PointIndex) {
		strength := springBreakingElongation
		if random.UniformBool(r.WeakSpringFraction) {
			strength = weakSpringBreakingElongation * random.UniformReal(0.8, 1.2)
		}
		s := gadgets.SpringIndex(len(springs))
		springs = append(springs, spring{
			a:          a,
			b:          b,
			restLength: points[a].pos.Sub(points[b].pos).Len(),
			strength:   strength,
		})
		points[a].springs = append(points[a].springs, s)
		points[b].springs = append(points[b].springs, s)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col+1 < cols {
				connect(index(col, row), index(col+1, row))
			}
			if row+1 < rows {
				connect(index(col, row), index(col, row+1))
			}
			if col+1 < cols && row+1 < rows {
				connect(index(col, row), index(col+1, row+1))
				connect(index(col+1, row), index(col, row+1))
			}
		}
	}
	return points, springs
}
