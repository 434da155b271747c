package replay

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records input state for a single tick
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	Fw  bool    `json:"fw,omitempty"`  // Forward
	Bk  bool    `json:"bk,omitempty"`  // Backward
	L   bool    `json:"l,omitempty"`   // Left
	R   bool    `json:"r,omitempty"`   // Right
	J   bool    `json:"j,omitempty"`   // Jump
	Dn  bool    `json:"dn,omitempty"`  // Descend
	Sp  bool    `json:"sp,omitempty"`  // Sprint
	Fly bool    `json:"fly,omitempty"` // Flying requested
	GM  string  `json:"gm,omitempty"`  // GameMode, empty when unchanged
	Yaw float64 `json:"yaw"`
	Pt  float64 `json:"pt,omitempty"` // Pitch
	Dt  float64 `json:"dt"`           // Delta
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	World     string       `json:"world"`
	GameMode  string       `json:"gameMode"`
	Spawn     [3]float64   `json:"spawn"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
	Checksum  uint64       `json:"checksum,omitempty"` // state after the last frame
}
