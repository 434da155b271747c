package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/domain/geom"
	"github.com/younwookim/voxelmove/internal/domain/voxel"
)

// BlockSource is the read-only view of the world used for movement
type BlockSource interface {
	IsChunkLoaded(chunkX, chunkZ int) bool
	BlockAt(x, y, z int) voxel.Block
}

// ChunkOf returns the chunk column containing a world position
func ChunkOf(pos mgl64.Vec3) (chunkX, chunkZ int) {
	return int(math.Floor(pos[0])) >> 4, int(math.Floor(pos[2])) >> 4
}

// ResolveAxis tests box against every block box within one block of it and
// pushes it out of each overlap along dir. Every overlap is applied, later
// ones against the already clamped box. A zero dir only reports hits.
func ResolveAxis(blocks BlockSource, box geom.Box, dir mgl64.Vec3) (geom.Box, bool) {
	minX, maxX := blockRange(box.Min[0], box.Max[0])
	minY, maxY := blockRange(box.Min[1], box.Max[1])
	minZ, maxZ := blockRange(box.Min[2], box.Max[2])

	hit := false
	for y := minY; y <= maxY; y++ {
		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				boxes := blocks.BlockAt(x, y, z).CollisionBoxes()
				if len(boxes) == 0 {
					continue
				}
				origin := mgl64.Vec3{float64(x), float64(y), float64(z)}
				for _, bb := range boxes {
					if bb.Empty() {
						continue
					}
					bb = bb.Translate(origin)
					if bb.Overlaps(box) {
						box = box.ResolveAlong(bb, dir)
						hit = true
					}
				}
			}
		}
	}

	return box, hit
}

// blockRange returns the inclusive block range covering [lo, hi] padded by one block
func blockRange(lo, hi float64) (int, int) {
	return int(math.Floor(lo)) - 1, int(math.Floor(hi)) + 1
}

// Resolution is the outcome of resolving one tick of motion
type Resolution struct {
	Position   mgl64.Vec3
	HitX       bool
	HitZ       bool
	HitY       bool
	StepHeight float64 // height climbed by step-up, 0 if none
}

// Resolver clips tentative motion against world geometry
type Resolver struct {
	blocks  BlockSource
	physics Physics
}

// NewResolver creates a resolver over blocks
func NewResolver(blocks BlockSource, physics Physics) *Resolver {
	return &Resolver{blocks: blocks, physics: physics}
}

// Resolve moves an entity with the given bounds from start towards target,
// one axis at a time in the order X, Z, Y, so blocked motion on one axis
// still completes on the others. When grounded and blocked horizontally it
// tries to climb onto the obstruction in StepHeight increments.
func (r *Resolver) Resolve(start, target mgl64.Vec3, bounds geom.Box, grounded bool) Resolution {
	var res Resolution
	pos := start

	pos[0] = target[0]
	box, hit := ResolveAxis(r.blocks, bounds.Translate(pos), mgl64.Vec3{pos[0] - start[0], 0, 0})
	pos[0] = box.Min[0] - bounds.Min[0]
	res.HitX = hit

	pos[2] = target[2]
	box, hit = ResolveAxis(r.blocks, bounds.Translate(pos), mgl64.Vec3{0, 0, pos[2] - start[2]})
	pos[2] = box.Min[2] - bounds.Min[2]
	res.HitZ = hit

	targetY := target[1]
	if (res.HitX || res.HitZ) && grounded {
		if step, ok := r.stepUp(start, target, bounds); ok {
			targetY += step
			pos[0], pos[2] = target[0], target[2]
			res.StepHeight = step
		}
	}

	pos[1] = targetY
	box, hit = ResolveAxis(r.blocks, bounds.Translate(pos), mgl64.Vec3{0, targetY - start[1], 0})
	pos[1] = box.Min[1] - bounds.Min[1]
	res.HitY = hit

	res.Position = pos
	return res
}

// stepUp returns the smallest raise that lets bounds stand at the
// horizontal target without touching anything
func (r *Resolver) stepUp(start, target mgl64.Vec3, bounds geom.Box) (float64, bool) {
	at := mgl64.Vec3{target[0], start[1], target[2]}
	for i := 1; i <= r.physics.StepIncrements; i++ {
		offset := float64(i) * r.physics.StepHeight
		raised := bounds.Translate(at.Add(mgl64.Vec3{0, offset, 0}))
		if _, hit := ResolveAxis(r.blocks, raised, mgl64.Vec3{}); !hit {
			return offset, true
		}
	}
	return 0, false
}

// OnGround reports whether anything lies in a thin slab just below the
// footprint of bounds at pos
func (r *Resolver) OnGround(pos mgl64.Vec3, bounds geom.Box) bool {
	probe := geom.NewBox(
		bounds.Min[0], bounds.Min[1]-r.physics.GroundProbeDepth, bounds.Min[2],
		bounds.Max[0], bounds.Min[1], bounds.Max[2],
	)
	_, hit := ResolveAxis(r.blocks, probe.Translate(pos), mgl64.Vec3{})
	return hit
}
