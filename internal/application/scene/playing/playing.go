// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/voxelmove/internal/application/replay"
	"github.com/younwookim/voxelmove/internal/application/scene"
	"github.com/younwookim/voxelmove/internal/application/state"
	"github.com/younwookim/voxelmove/internal/application/system"
	"github.com/younwookim/voxelmove/internal/domain/voxel"
	"github.com/younwookim/voxelmove/internal/ecs"
	"github.com/younwookim/voxelmove/internal/infrastructure/config"
	"github.com/zeebo/xxh3"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorUnloaded = color.RGBA{10, 10, 16, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorFlying   = color.RGBA{120, 160, 255, 255}
	colorHeading  = color.RGBA{255, 255, 255, 220}
	colorLanding  = color.RGBA{255, 215, 0, 90}
)

const (
	turnRate          = math.Pi / 60 // radians per tick
	landingFlashTicks = 12
)

// Playing is the main gameplay scene
type Playing struct {
	cfg         *config.Config
	blocks      *voxel.World
	world       *ecs.World
	player      ecs.Entity
	movement    *system.MovementSystem
	inputSystem *system.InputSystem
	state       state.GameState
	screenW     int
	screenH     int
	zoom        float64
	log         logrus.FieldLogger

	lastTick     system.TickResult
	landingFlash int
	ticks        int

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene over blocks.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.Config, blocks *voxel.World, recordPath string, log logrus.FieldLogger) (*Playing, error) {
	spec, err := system.PlayerSpec(&cfg.Player)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	player := world.SpawnLocalPlayer(spec)

	p := &Playing{
		cfg:            cfg,
		blocks:         blocks,
		world:          world,
		player:         player,
		movement:       system.NewMovementSystem(system.NewPhysics(&cfg.Physics), blocks),
		inputSystem:    system.NewInputSystem(system.DefaultBindings()),
		state:          state.StatePlaying,
		screenW:        cfg.Display.Width,
		screenH:        cfg.Display.Height,
		zoom:           float64(max(cfg.Display.Zoom, 1)),
		log:            log,
		recordFilename: recordPath,
	}

	if recordPath != "" {
		p.recorder = NewRecorder(cfg.World.Name, spec.Mode.String(), spec.Position)
		log.WithField("file", recordPath).Info("recording enabled")
	}

	return p, nil
}

// Name identifies the scene in logs
func (p *Playing) Name() string {
	return "playing"
}

// Update polls the keyboard and advances the scene (implements scene.Scene)
func (p *Playing) Update(delta float64) (scene.Scene, error) {
	return nil, p.step(p.inputSystem.GetInput(), delta)
}

// step applies one tick of input. Kept apart from Update so tests can drive
// the scene without a keyboard.
func (p *Playing) step(input system.InputState, delta float64) error {
	if input.Pause {
		if p.state == state.StatePaused {
			p.state = state.StatePlaying
		} else {
			p.state = state.StatePaused
		}
	}
	if !p.state.Simulating() {
		return nil
	}

	if input.SaveRecording && p.recorder != nil {
		p.saveRecording()
	}

	in := p.buildInput(input, delta)
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	m, err := in.Apply(p.world, p.player)
	if err != nil {
		return fmt.Errorf("tick %d: %w", p.ticks, err)
	}
	p.lastTick = p.movement.Tick(m, delta)
	p.ticks++

	switch {
	case p.lastTick.Frozen && p.state != state.StateLoading:
		p.state = state.StateLoading
		p.log.WithField("tick", p.ticks).Debug("player chunk not loaded, waiting")
	case !p.lastTick.Frozen && p.state == state.StateLoading:
		p.state = state.StatePlaying
	}

	if m.Movement.DidTouchGround {
		m.Movement.DidTouchGround = false
		p.landingFlash = landingFlashTicks
	} else if p.landingFlash > 0 {
		p.landingFlash--
	}

	return nil
}

// buildInput turns the polled keys into the input for this tick: turning,
// game mode cycling and flight toggling
func (p *Playing) buildInput(input system.InputState, delta float64) replay.ReplayInput {
	m := p.world.Mover(p.player)
	in := replay.ReplayInput{
		Keys:   input.Keys,
		Yaw:    m.Rotation.Yaw,
		Pitch:  m.Rotation.Pitch,
		Flying: m.Movement.Flying,
		Delta:  delta,
	}

	if input.TurnLeft {
		in.Yaw += turnRate * delta
	}
	if input.TurnRight {
		in.Yaw -= turnRate * delta
	}

	mode := m.GameMode
	if input.CycleGameMode {
		mode = (mode + 1) % (ecs.Spectator + 1)
		in.GameMode = mode.String()
		if !mode.CanToggleFlight() {
			in.Flying = false
		}
		p.log.WithField("game_mode", in.GameMode).Info("game mode changed")
	}
	if input.ToggleFlight && mode.CanToggleFlight() {
		in.Flying = !in.Flying
	}

	return in
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	checksum := replay.Checksum(p.world.Mover(p.player))
	entry := p.log.WithFields(logrus.Fields{"file": filename, "frames": p.recorder.FrameCount()})
	if err := p.recorder.Save(filename, checksum); err != nil {
		entry.WithError(err).Error("failed to save recording")
	} else {
		entry.WithField("checksum", fmt.Sprintf("%016x", checksum)).Info("recording saved")
	}
}

// Draw renders a top-down slice of the world around the player
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	m := p.world.Mover(p.player)
	pos := m.Position.Current
	camX := pos.X() - float64(p.screenW)/2/p.zoom
	camZ := pos.Z() - float64(p.screenH)/2/p.zoom

	p.drawBlocks(screen, camX, camZ, int(math.Floor(pos.Y())))
	p.drawPlayer(screen, m, camX, camZ)
	p.drawHUD(screen, m)

	if p.landingFlash > 0 {
		ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorLanding)
	}
	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateLoading:
		p.drawOverlay(screen, "Waiting for chunk...")
	}
}

// drawBlocks draws the collision footprints of the layer at the player's feet
// over a dimmed layer below it
func (p *Playing) drawBlocks(screen *ebiten.Image, camX, camZ float64, feetY int) {
	x0, z0 := int(math.Floor(camX)), int(math.Floor(camZ))
	x1 := int(math.Ceil(camX + float64(p.screenW)/p.zoom))
	z1 := int(math.Ceil(camZ + float64(p.screenH)/p.zoom))

	for z := z0; z <= z1; z++ {
		for x := x0; x <= x1; x++ {
			sx := (float64(x) - camX) * p.zoom
			sz := (float64(z) - camZ) * p.zoom
			if !p.blocks.IsChunkLoaded(x>>4, z>>4) {
				ebitenutil.DrawRect(screen, sx, sz, p.zoom, p.zoom, colorUnloaded)
				continue
			}
			p.drawBlock(screen, p.blocks.BlockAt(x, feetY-1, z), x, z, camX, camZ, 0.45)
			p.drawBlock(screen, p.blocks.BlockAt(x, feetY, z), x, z, camX, camZ, 1)
		}
	}
}

func (p *Playing) drawBlock(screen *ebiten.Image, b voxel.Block, x, z int, camX, camZ, shade float64) {
	c := blockColor(b.Name(), shade)
	for _, box := range b.CollisionBoxes() {
		if box.Empty() {
			continue
		}
		sx := (float64(x) + box.Min.X() - camX) * p.zoom
		sz := (float64(z) + box.Min.Z() - camZ) * p.zoom
		w := (box.Max.X() - box.Min.X()) * p.zoom
		h := (box.Max.Z() - box.Min.Z()) * p.zoom
		ebitenutil.DrawRect(screen, sx, sz, w, h, c)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, m ecs.Mover, camX, camZ float64) {
	box := m.Bounds.Box.Translate(m.Position.Current)
	c := colorPlayer
	if m.Motion.Mode == ecs.Flying {
		c = colorFlying
	}
	ebitenutil.DrawRect(screen,
		(box.Min.X()-camX)*p.zoom, (box.Min.Z()-camZ)*p.zoom,
		(box.Max.X()-box.Min.X())*p.zoom, (box.Max.Z()-box.Min.Z())*p.zoom, c)

	intent := system.CalculateMovement(ecs.KeySet{ecs.KeyForward: true}, m.Rotation.Yaw)
	cx := (m.Position.Current.X() - camX) * p.zoom
	cz := (m.Position.Current.Z() - camZ) * p.zoom
	ebitenutil.DrawLine(screen, cx, cz,
		cx+math.Cos(intent.Heading)*p.zoom, cz-math.Sin(intent.Heading)*p.zoom, colorHeading)
}

func (p *Playing) drawHUD(screen *ebiten.Image, m ecs.Mover) {
	pos, vel := m.Position.Current, m.Velocity.Value
	text := fmt.Sprintf(
		"XYZ %.3f %.3f %.3f\nVY %.4f\n%s / %s  ground=%v moved=%v\nstep=%.3f hit=%v%v%v",
		pos.X(), pos.Y(), pos.Z(), vel.Y(),
		m.GameMode, m.Motion.Mode, m.Motion.OnGround, m.Position.Moved,
		p.lastTick.Resolution.StepHeight,
		hitFlag(p.lastTick.Resolution.HitX, "x"),
		hitFlag(p.lastTick.Resolution.HitY, "y"),
		hitFlag(p.lastTick.Resolution.HitZ, "z"),
	)
	if p.recorder != nil {
		text += fmt.Sprintf("\nREC %d", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, text)

	controls := "WASD: Move | Space/Ctrl: Up/Down | Q/E: Turn | F: Fly | G: Mode | ESC: Pause"
	ebitenutil.DebugPrintAt(screen, controls, 4, p.screenH-16)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.log.WithFields(logrus.Fields{
		"world":     p.cfg.World.Name,
		"game_mode": p.world.Mover(p.player).GameMode.String(),
	}).Info("entering world")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// blockColor derives a stable color from the block name
func blockColor(name string, shade float64) color.RGBA {
	h := xxh3.HashString(name)
	return color.RGBA{
		R: uint8(float64(80+h%140) * shade),
		G: uint8(float64(80+(h>>16)%140) * shade),
		B: uint8(float64(80+(h>>32)%140) * shade),
		A: 255,
	}
}

func hitFlag(hit bool, axis string) string {
	if hit {
		return axis
	}
	return "-"
}
