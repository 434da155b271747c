package geom

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the gap left between a resolved box and the face it was pushed against.
const Epsilon = 1e-4

// Box is an axis-aligned box. Touching faces are not considered overlapping.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox creates a box from its corner coordinates
func NewBox(minX, minY, minZ, maxX, maxY, maxZ float64) Box {
	return Box{
		Min: mgl64.Vec3{minX, minY, minZ},
		Max: mgl64.Vec3{maxX, maxY, maxZ},
	}
}

// Translate returns the box moved by offset
func (b Box) Translate(offset mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Size returns the extent of the box on every axis
func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Empty reports whether the box has no volume
func (b Box) Empty() bool {
	return b.Max[0] <= b.Min[0] || b.Max[1] <= b.Min[1] || b.Max[2] <= b.Min[2]
}

// Overlaps reports whether the interiors of both boxes intersect
func (b Box) Overlaps(other Box) bool {
	for i := 0; i < 3; i++ {
		if other.Min[i] >= b.Max[i] || other.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

// ResolveAlong pushes b out of other on every axis where dir is non-zero.
// Moving in +axis pulls Max back to other.Min-Epsilon, moving in -axis pushes
// Min forward to other.Max+Epsilon. The box keeps its size. A box that
// already sits at or beyond that limit is left where it is.
func (b Box) ResolveAlong(other Box, dir mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		var shift float64
		switch {
		case dir[i] > 0:
			limit := other.Min[i] - Epsilon
			if b.Max[i] <= limit {
				continue
			}
			shift = limit - b.Max[i]
		case dir[i] < 0:
			limit := other.Max[i] + Epsilon
			if b.Min[i] >= limit {
				continue
			}
			shift = limit - b.Min[i]
		default:
			continue
		}
		b.Min[i] += shift
		b.Max[i] += shift
	}
	return b
}
