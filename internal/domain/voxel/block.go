package voxel

import (
	"fmt"

	"github.com/younwookim/voxelmove/internal/domain/geom"
)

// Block is a single world cell. Collision boxes are block-local (0..1 per axis).
type Block interface {
	Name() string
	CollisionBoxes() []geom.Box
}

// Facing is the horizontal direction a directional block points to
type Facing int

const (
	North Facing = iota // -Z
	South               // +Z
	West                // -X
	East                // +X
)

func (f Facing) String() string {
	switch f {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return fmt.Sprintf("Facing(%d)", int(f))
	}
}

// ParseFacing parses a facing name
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "north", "":
		return North, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	case "east":
		return East, nil
	}
	return North, fmt.Errorf("unknown facing %q", s)
}

// Air is the empty block
type Air struct{}

func (Air) Name() string               { return "air" }
func (Air) CollisionBoxes() []geom.Box { return nil }

// Solid is a full cube
type Solid struct {
	ID string
}

func (b Solid) Name() string { return b.ID }
func (Solid) CollisionBoxes() []geom.Box {
	return []geom.Box{geom.NewBox(0, 0, 0, 1, 1, 1)}
}

// Slab fills either the bottom or the top half of the cell
type Slab struct {
	ID  string
	Top bool
}

func (b Slab) Name() string { return b.ID }
func (b Slab) CollisionBoxes() []geom.Box {
	if b.Top {
		return []geom.Box{geom.NewBox(0, 0.5, 0, 1, 1, 1)}
	}
	return []geom.Box{geom.NewBox(0, 0, 0, 1, 0.5, 1)}
}

// Layer is a flat block Height/16 tall, like snow layers or carpets
type Layer struct {
	ID     string
	Height int
}

func (b Layer) Name() string { return b.ID }
func (b Layer) CollisionBoxes() []geom.Box {
	return []geom.Box{geom.NewBox(0, 0, 0, 1, float64(b.Height)/16, 1)}
}

// Stair is a bottom slab plus a top half on the facing side
type Stair struct {
	ID     string
	Facing Facing
}

func (b Stair) Name() string { return b.ID }
func (b Stair) CollisionBoxes() []geom.Box {
	step := geom.NewBox(0, 0.5, 0, 1, 1, 0.5)
	switch b.Facing {
	case South:
		step = geom.NewBox(0, 0.5, 0.5, 1, 1, 1)
	case West:
		step = geom.NewBox(0, 0.5, 0, 0.5, 1, 1)
	case East:
		step = geom.NewBox(0.5, 0.5, 0, 1, 1, 1)
	}
	return []geom.Box{geom.NewBox(0, 0, 0, 1, 0.5, 1), step}
}

// Fence is a centre post that is taller than a full block
type Fence struct {
	ID string
}

func (b Fence) Name() string { return b.ID }
func (Fence) CollisionBoxes() []geom.Box {
	return []geom.Box{geom.NewBox(0.375, 0, 0.375, 0.625, 1.5, 0.625)}
}

// Passable is a visible block without collision, like tall grass
type Passable struct {
	ID string
}

func (b Passable) Name() string             { return b.ID }
func (Passable) CollisionBoxes() []geom.Box { return nil }

// Marker reports a zero-height box on the cell floor, like a pressure plate
// outline. Empty boxes never collide.
type Marker struct {
	ID string
}

func (b Marker) Name() string { return b.ID }
func (Marker) CollisionBoxes() []geom.Box {
	return []geom.Box{geom.NewBox(0, 0, 0, 1, 0, 1)}
}

// BlockSpec describes a block kind by name, used when building from configuration
type BlockSpec struct {
	Name   string
	Kind   string
	Top    bool
	Height int
	Facing string
}

// NewBlock builds a block from its kind name and parameters
func NewBlock(spec BlockSpec) (Block, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("block of kind %q has no name", spec.Kind)
	}
	switch spec.Kind {
	case "solid":
		return Solid{ID: spec.Name}, nil
	case "slab":
		return Slab{ID: spec.Name, Top: spec.Top}, nil
	case "layer":
		if spec.Height < 1 || spec.Height > 16 {
			return nil, fmt.Errorf("block %s: layer height %d out of range 1..16", spec.Name, spec.Height)
		}
		return Layer{ID: spec.Name, Height: spec.Height}, nil
	case "stair":
		facing, err := ParseFacing(spec.Facing)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", spec.Name, err)
		}
		return Stair{ID: spec.Name, Facing: facing}, nil
	case "fence":
		return Fence{ID: spec.Name}, nil
	case "passable":
		return Passable{ID: spec.Name}, nil
	case "marker":
		return Marker{ID: spec.Name}, nil
	}
	return nil, fmt.Errorf("block %s: unknown kind %q", spec.Name, spec.Kind)
}
