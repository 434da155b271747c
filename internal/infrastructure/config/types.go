package config

// Config is the root configuration
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	World   WorldConfig   `yaml:"world"`
	Display DisplayConfig `yaml:"display"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

// PhysicsConfig holds movement tuning. Speeds are in blocks per second and
// converted to blocks per tick unit when the physics is built.
type PhysicsConfig struct {
	TicksPerSecond   float64 `yaml:"ticks_per_second"`
	WalkSpeed        float64 `yaml:"walk_speed"`        // blocks/s
	SprintSpeed      float64 `yaml:"sprint_speed"`      // blocks/s
	FlyMultiplier    float64 `yaml:"fly_multiplier"`    // applied to walk/sprint speed
	JumpVelocity     float64 `yaml:"jump_velocity"`     // blocks/tick
	Gravity          float64 `yaml:"gravity"`           // blocks/tick²
	TerminalVelocity float64 `yaml:"terminal_velocity"` // blocks/tick, positive
	StepIncrements   int     `yaml:"step_increments"`   // step-up offsets tried
	StepResolution   int     `yaml:"step_resolution"`   // offsets per block
	GroundProbeDepth float64 `yaml:"ground_probe_depth"`
}

// PlayerConfig describes the local player
type PlayerConfig struct {
	HalfWidth float64    `yaml:"half_width"`
	Height    float64    `yaml:"height"`
	GameMode  string     `yaml:"game_mode"`
	Spawn     [3]float64 `yaml:"spawn"`
	Yaw       float64    `yaml:"yaw"` // degrees
}

// WorldConfig describes the demo world
type WorldConfig struct {
	Name        string            `yaml:"name"`
	ChunkRadius int               `yaml:"chunk_radius"`
	Unloaded    [][2]int          `yaml:"unloaded"` // chunk columns left unloaded
	Blocks      []BlockConfig     `yaml:"blocks"`
	Layers      []LayerConfig     `yaml:"layers"`
	Placements  []PlacementConfig `yaml:"placements"`
}

// BlockConfig declares one palette entry. Declaration order fixes palette ids.
type BlockConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Top    bool   `yaml:"top,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Facing string `yaml:"facing,omitempty"`
}

// LayerConfig fills one horizontal layer of every loaded chunk
type LayerConfig struct {
	Block string `yaml:"block"`
	Y     int    `yaml:"y"`
}

// PlacementConfig fills an inclusive box of blocks
type PlacementConfig struct {
	Block string `yaml:"block"`
	From  [3]int `yaml:"from"`
	To    [3]int `yaml:"to"`
}

// DisplayConfig configures the client window
type DisplayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	TPS    int    `yaml:"tps"`
	Title  string `yaml:"title"`
	Zoom   int    `yaml:"zoom"` // pixels per block
}

// SentryConfig configures crash reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}
