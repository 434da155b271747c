package voxel

// Chunk dimensions. A chunk is a 16x16 column split into 16-high sections.
const (
	ChunkSize   = 16
	SectionSize = 16

	chunkShift = 4
	chunkMask  = ChunkSize - 1

	sectionVolume = ChunkSize * SectionSize * ChunkSize
)

// ChunkPos identifies a chunk column
type ChunkPos struct {
	X, Z int
}

// ChunkPosAt returns the chunk column containing block (x, z)
func ChunkPosAt(x, z int) ChunkPos {
	return ChunkPos{X: x >> chunkShift, Z: z >> chunkShift}
}

// section stores palette ids, idx = x | z<<4 | y<<8
type section struct {
	ids    [sectionVolume]uint16
	filled int
}

func sectionIdx(x, y, z int) int {
	return x | z<<chunkShift | y<<(2*chunkShift)
}

// Chunk is one loaded column of the world. Sections are allocated lazily;
// a missing section is all air.
type Chunk struct {
	Pos      ChunkPos
	sections map[int]*section
}

// NewChunk creates an empty chunk
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos, sections: make(map[int]*section)}
}

// Get returns the palette id at chunk-local x, z and world y
func (c *Chunk) Get(x, y, z int) uint16 {
	s := c.sections[y>>chunkShift]
	if s == nil {
		return AirID
	}
	return s.ids[sectionIdx(x&chunkMask, y&chunkMask, z&chunkMask)]
}

// Set stores a palette id at chunk-local x, z and world y
func (c *Chunk) Set(x, y, z int, id uint16) {
	sy := y >> chunkShift
	s := c.sections[sy]
	if s == nil {
		if id == AirID {
			return
		}
		s = &section{}
		c.sections[sy] = s
	}

	idx := sectionIdx(x&chunkMask, y&chunkMask, z&chunkMask)
	old := s.ids[idx]
	s.ids[idx] = id
	switch {
	case old == AirID && id != AirID:
		s.filled++
	case old != AirID && id == AirID:
		s.filled--
		if s.filled == 0 {
			delete(c.sections, sy)
		}
	}
}

// Sections returns the number of allocated sections
func (c *Chunk) Sections() int {
	return len(c.sections)
}
