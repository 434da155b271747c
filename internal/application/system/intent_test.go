package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/voxelmove/internal/ecs"
)

func keySet(keys ...ecs.Key) ecs.KeySet {
	s := ecs.KeySet{}
	for _, k := range keys {
		s[k] = true
	}
	return s
}

func TestCalculateMovement(t *testing.T) {
	const yaw = 0.7
	base := yaw - math.Pi/2

	tests := []struct {
		name        string
		keys        ecs.KeySet
		wantForward float64
		wantHeading float64
	}{
		{"idle", keySet(), 0, base},
		{"forward", keySet(ecs.KeyForward), 1, base},
		{"backward", keySet(ecs.KeyBackward), 1, base + math.Pi},
		{"forward and backward", keySet(ecs.KeyForward, ecs.KeyBackward), 1, base + math.Pi},
		{"strafe left", keySet(ecs.KeyLeft), 1, base + math.Pi/2},
		{"strafe right", keySet(ecs.KeyRight), 1, base - math.Pi/2},
		{"left and right", keySet(ecs.KeyLeft, ecs.KeyRight), 1, base - math.Pi/2},
		{"forward left", keySet(ecs.KeyForward, ecs.KeyLeft), 1, base + math.Pi/4},
		{"forward right", keySet(ecs.KeyForward, ecs.KeyRight), 1, base - math.Pi/4},
		{"backward left", keySet(ecs.KeyBackward, ecs.KeyLeft), 1, base + math.Pi - math.Pi/4},
		{"backward right", keySet(ecs.KeyBackward, ecs.KeyRight), 1, base + math.Pi + math.Pi/4},
		{"jump only", keySet(ecs.KeyJump, ecs.KeySprint), 0, base},
		{"released keys", ecs.KeySet{ecs.KeyForward: false}, 0, base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMovement(tt.keys, yaw)
			assert.Equal(t, tt.wantForward, got.Forward)
			assert.InDelta(t, tt.wantHeading, got.Heading, 1e-12)
		})
	}
}

func TestCalculateMovement_Reproducible(t *testing.T) {
	keys := keySet(ecs.KeyBackward, ecs.KeyLeft)
	first := CalculateMovement(keys, 1.234)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateMovement(keys, 1.234))
	}
}

func TestCalculateMovement_NilKeys(t *testing.T) {
	got := CalculateMovement(nil, 0)
	assert.Equal(t, 0.0, got.Forward)
	assert.InDelta(t, -math.Pi/2, got.Heading, 1e-12)
}
