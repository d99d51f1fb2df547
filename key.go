package kdknn

import "math"

// NoPointID is the identifier stored in candidate slots that have not been
// filled by any point.
const NoPointID int32 = -1

// Encode packs a squared distance and a point identifier into a single key.
//
// The high 32 bits hold the IEEE-754 bit pattern of dist2 and the low 32 bits
// hold the bit pattern of id. For non-negative, non-NaN distances the bit
// pattern is monotonic when read as an unsigned integer, so comparing two keys
// as uint64 orders them by distance first and by unsigned id second.
func Encode(dist2 float32, id int32) uint64 {
	assertDist2(dist2)
	if dist2 == 0 {
		// -0 has the sign bit set and would sort after every positive value.
		dist2 = 0
	}
	return uint64(math.Float32bits(dist2))<<32 | uint64(uint32(id))
}

// DecodeDist2 returns the squared distance stored in key.
func DecodeDist2(key uint64) float32 {
	return math.Float32frombits(uint32(key >> 32))
}

// DecodePointID returns the point identifier stored in key.
func DecodePointID(key uint64) int32 {
	return int32(uint32(key))
}
