package kdknn

import "github.com/chewxy/math32"

// Point is a fixed-dimension float32 coordinate vector. Implementations are
// value types so that traversals can copy and modify them freely.
type Point[P any] interface {
	// Dims returns the number of coordinates.
	Dims() int
	// Coord returns the coordinate along dim.
	Coord(dim int) float32
	// WithCoord returns a copy of the point with the coordinate along dim
	// replaced by v.
	WithCoord(dim int, v float32) P
}

// DataTraits extracts the position of a data item stored in a tree.
type DataTraits[D any, P Point[P]] interface {
	GetPoint(d D) P
}

// PointData is the DataTraits for trees whose data items are points.
type PointData[P Point[P]] struct{}

func (PointData[P]) GetPoint(p P) P { return p }

// DefaultCutoff is the cutoff radius for an unbounded search.
var DefaultCutoff = math32.Inf(1)

// Vec2 is a two-dimensional point.
type Vec2 [2]float32

func (v Vec2) Dims() int             { return 2 }
func (v Vec2) Coord(dim int) float32 { return v[dim] }
func (v Vec2) WithCoord(dim int, c float32) Vec2 {
	v[dim] = c
	return v
}

// Vec3 is a three-dimensional point.
type Vec3 [3]float32

func (v Vec3) Dims() int             { return 3 }
func (v Vec3) Coord(dim int) float32 { return v[dim] }
func (v Vec3) WithCoord(dim int, c float32) Vec3 {
	v[dim] = c
	return v
}

// Vec4 is a four-dimensional point.
type Vec4 [4]float32

func (v Vec4) Dims() int             { return 4 }
func (v Vec4) Coord(dim int) float32 { return v[dim] }
func (v Vec4) WithCoord(dim int, c float32) Vec4 {
	v[dim] = c
	return v
}

// SqrDistance returns the squared Euclidean distance between a and b.
func SqrDistance[P Point[P]](a, b P) float32 {
	var sum float32
	for d := 0; d < a.Dims(); d++ {
		diff := a.Coord(d) - b.Coord(d)
		sum += diff * diff
	}
	return sum
}

// Distance returns the Euclidean distance between a and b.
func Distance[P Point[P]](a, b P) float32 {
	return math32.Sqrt(SqrDistance(a, b))
}

func isFinitePoint[P Point[P]](p P) bool {
	for d := 0; d < p.Dims(); d++ {
		c := p.Coord(d)
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
