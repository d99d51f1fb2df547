package kdknn

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding region.
type Box[P Point[P]] struct {
	Lower, Upper P
}

// EmptyBox returns a box that contains nothing and grows to fit the first
// point added to it.
func EmptyBox[P Point[P]]() Box[P] {
	var lo, hi P
	for d := 0; d < lo.Dims(); d++ {
		lo = lo.WithCoord(d, math32.Inf(1))
		hi = hi.WithCoord(d, math32.Inf(-1))
	}
	return Box[P]{Lower: lo, Upper: hi}
}

// Grow extends the box to contain p.
func (b *Box[P]) Grow(p P) {
	for d := 0; d < p.Dims(); d++ {
		c := p.Coord(d)
		b.Lower = b.Lower.WithCoord(d, math32.Min(b.Lower.Coord(d), c))
		b.Upper = b.Upper.WithCoord(d, math32.Max(b.Upper.Coord(d), c))
	}
}

// Contains reports whether p lies inside the box, boundary included.
func (b Box[P]) Contains(p P) bool {
	for d := 0; d < p.Dims(); d++ {
		c := p.Coord(d)
		if c < b.Lower.Coord(d) || c > b.Upper.Coord(d) {
			return false
		}
	}
	return true
}

// WidestDim returns the axis along which the box is largest.
func (b Box[P]) WidestDim() int {
	best, bestExtent := 0, math32.Inf(-1)
	for d := 0; d < b.Lower.Dims(); d++ {
		if extent := b.Upper.Coord(d) - b.Lower.Coord(d); extent > bestExtent {
			best, bestExtent = d, extent
		}
	}
	return best
}

// Project returns the point of box closest to p.
func Project[P Point[P]](box Box[P], p P) P {
	for d := 0; d < p.Dims(); d++ {
		c := math32.Max(box.Lower.Coord(d), math32.Min(p.Coord(d), box.Upper.Coord(d)))
		p = p.WithCoord(d, c)
	}
	return p
}
