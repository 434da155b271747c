package voxel

import (
	"fmt"
	"sync"
)

// World is the chunked block store. Chunks must be loaded before blocks can
// be placed; lookups in unloaded space return air.
type World struct {
	mu      sync.RWMutex
	palette *Palette
	chunks  map[ChunkPos]*Chunk
}

// NewWorld creates an empty world using palette for block ids
func NewWorld(palette *Palette) *World {
	return &World{
		palette: palette,
		chunks:  make(map[ChunkPos]*Chunk, 64),
	}
}

// Palette returns the block palette
func (w *World) Palette() *Palette {
	return w.palette
}

// LoadChunk loads an empty chunk at pos, or returns the chunk already there
func (w *World) LoadChunk(pos ChunkPos) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := w.chunks[pos]
	if ch == nil {
		ch = NewChunk(pos)
		w.chunks[pos] = ch
	}
	return ch
}

// UnloadChunk drops the chunk at pos with all of its blocks
func (w *World) UnloadChunk(pos ChunkPos) {
	w.mu.Lock()
	delete(w.chunks, pos)
	w.mu.Unlock()
}

// IsChunkLoaded reports whether the chunk column (chunkX, chunkZ) is loaded
func (w *World) IsChunkLoaded(chunkX, chunkZ int) bool {
	w.mu.RLock()
	_, ok := w.chunks[ChunkPos{X: chunkX, Z: chunkZ}]
	w.mu.RUnlock()
	return ok
}

// LoadedChunks returns the number of loaded chunks
func (w *World) LoadedChunks() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// BlockAt returns the block at integer block coordinates
func (w *World) BlockAt(x, y, z int) Block {
	return w.palette.Block(w.IDAt(x, y, z))
}

// IDAt returns the palette id at integer block coordinates
func (w *World) IDAt(x, y, z int) uint16 {
	w.mu.RLock()
	ch := w.chunks[ChunkPosAt(x, z)]
	w.mu.RUnlock()
	if ch == nil {
		return AirID
	}
	return ch.Get(x, y, z)
}

// SetBlock places the block with palette id at integer block coordinates
func (w *World) SetBlock(x, y, z int, id uint16) error {
	if int(id) >= w.palette.Len() {
		return fmt.Errorf("block id %d not in palette", id)
	}

	pos := ChunkPosAt(x, z)
	w.mu.Lock()
	defer w.mu.Unlock()
	ch := w.chunks[pos]
	if ch == nil {
		return fmt.Errorf("chunk %d,%d not loaded", pos.X, pos.Z)
	}
	ch.Set(x, y, z, id)
	return nil
}

// Fill places id in every cell of the inclusive range [min, max]
func (w *World) Fill(minX, minY, minZ, maxX, maxY, maxZ int, id uint16) error {
	for y := minY; y <= maxY; y++ {
		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				if err := w.SetBlock(x, y, z, id); err != nil {
					return fmt.Errorf("fill at %d,%d,%d: %w", x, y, z, err)
				}
			}
		}
	}
	return nil
}
