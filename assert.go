//go:build kdknn_debug

package kdknn

import "fmt"

const debugAssertions = true

func assertDist2(dist2 float32) {
	if dist2 != dist2 || dist2 < 0 {
		panic(fmt.Sprintf("kdknn: squared distance must be non-negative, got %v", dist2))
	}
}
