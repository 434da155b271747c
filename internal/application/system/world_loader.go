package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/voxelmove/internal/domain/geom"
	"github.com/younwookim/voxelmove/internal/domain/voxel"
	"github.com/younwookim/voxelmove/internal/ecs"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
)

// LoadWorld converts a WorldConfig into a block world. Chunks within
// ChunkRadius of the origin are loaded except those listed as unloaded.
func LoadWorld(cfg *config.WorldConfig) (*voxel.World, error) {
	palette := voxel.NewPalette()
	for _, b := range cfg.Blocks {
		block, err := voxel.NewBlock(voxel.BlockSpec{
			Name:   b.Name,
			Kind:   b.Kind,
			Top:    b.Top,
			Height: b.Height,
			Facing: b.Facing,
		})
		if err != nil {
			return nil, fmt.Errorf("world %s: %w", cfg.Name, err)
		}
		if _, err := palette.Register(block); err != nil {
			return nil, fmt.Errorf("world %s: %w", cfg.Name, err)
		}
	}

	skip := make(map[voxel.ChunkPos]bool, len(cfg.Unloaded))
	for _, c := range cfg.Unloaded {
		skip[voxel.ChunkPos{X: c[0], Z: c[1]}] = true
	}

	world := voxel.NewWorld(palette)
	var loaded []voxel.ChunkPos
	for cx := -cfg.ChunkRadius; cx <= cfg.ChunkRadius; cx++ {
		for cz := -cfg.ChunkRadius; cz <= cfg.ChunkRadius; cz++ {
			pos := voxel.ChunkPos{X: cx, Z: cz}
			if skip[pos] {
				continue
			}
			world.LoadChunk(pos)
			loaded = append(loaded, pos)
		}
	}

	for _, layer := range cfg.Layers {
		id, err := blockID(palette, layer.Block)
		if err != nil {
			return nil, fmt.Errorf("world %s: layer y=%d: %w", cfg.Name, layer.Y, err)
		}
		for _, pos := range loaded {
			x0, z0 := pos.X*voxel.ChunkSize, pos.Z*voxel.ChunkSize
			if err := world.Fill(x0, layer.Y, z0, x0+voxel.ChunkSize-1, layer.Y, z0+voxel.ChunkSize-1, id); err != nil {
				return nil, fmt.Errorf("world %s: %w", cfg.Name, err)
			}
		}
	}

	for _, p := range cfg.Placements {
		id, err := blockID(palette, p.Block)
		if err != nil {
			return nil, fmt.Errorf("world %s: placement: %w", cfg.Name, err)
		}
		if err := world.Fill(
			min(p.From[0], p.To[0]), min(p.From[1], p.To[1]), min(p.From[2], p.To[2]),
			max(p.From[0], p.To[0]), max(p.From[1], p.To[1]), max(p.From[2], p.To[2]),
			id,
		); err != nil {
			return nil, fmt.Errorf("world %s: placement of %s: %w", cfg.Name, p.Block, err)
		}
	}

	return world, nil
}

func blockID(palette *voxel.Palette, name string) (uint16, error) {
	id, ok := palette.ID(name)
	if !ok {
		return 0, fmt.Errorf("unknown block %q", name)
	}
	return id, nil
}

// PlayerSpec converts a PlayerConfig into the spec of the local player
func PlayerSpec(cfg *config.PlayerConfig) (ecs.MoverSpec, error) {
	mode, err := ecs.ParseGameMode(cfg.GameMode)
	if err != nil {
		return ecs.MoverSpec{}, fmt.Errorf("player: %w", err)
	}

	return ecs.MoverSpec{
		Position: mgl64.Vec3{cfg.Spawn[0], cfg.Spawn[1], cfg.Spawn[2]},
		Yaw:      cfg.Yaw * math.Pi / 180,
		Mode:     mode,
		Flying:   mode.AlwaysFly(),
		Bounds: ecs.Bounds{Box: geom.NewBox(
			-cfg.HalfWidth, 0, -cfg.HalfWidth,
			cfg.HalfWidth, cfg.Height, cfg.HalfWidth,
		)},
	}, nil
}
