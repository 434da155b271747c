package replay

import (
	"encoding/binary"
	"math"

	"github.com/younwookim/voxelmove/internal/ecs"
	"github.com/zeebo/xxh3"
)

// Checksum hashes the simulated state of a mover. Two runs that fed the same
// frames into the same world produce the same checksum.
func Checksum(m ecs.Mover) uint64 {
	buf := make([]byte, 0, 8*8+3)
	for _, v := range [...]float64{
		m.Position.Current[0], m.Position.Current[1], m.Position.Current[2],
		m.Velocity.Value[0], m.Velocity.Value[1], m.Velocity.Value[2],
		m.Rotation.Yaw, m.Rotation.Pitch,
	} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	buf = append(buf, byte(m.Motion.Mode), boolByte(m.Motion.OnGround), byte(m.GameMode))
	return xxh3.Hash(buf)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
