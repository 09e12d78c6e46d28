package visualization

import (
	"errors"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const helpText = "Click: add point | Enter: start/step | Esc: stop/clear | T: turbo | P: pause"

// Command is a user action on the simulation.
type Command int

const (
	CommandNone Command = iota
	CommandAddPoint
	CommandStart
	CommandStop
	CommandToggleTurbo
	CommandTogglePause
)

// Input translates keyboard and mouse events into simulation commands.
type Input struct {
	r *Renderer
}

// NewInput creates the input handler for a renderer.
func NewInput(r *Renderer) *Input {
	return &Input{r: r}
}

// Update polls the devices and applies every command issued this frame.
func (in *Input) Update() {
	for _, cmd := range in.poll() {
		in.Apply(cmd)
	}
}

func (in *Input) poll() []Command {
	var cmds []Command
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		cmds = append(cmds, CommandAddPoint)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		cmds = append(cmds, CommandStart)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cmds = append(cmds, CommandStop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		cmds = append(cmds, CommandToggleTurbo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		cmds = append(cmds, CommandTogglePause)
	}
	return cmds
}

// Apply executes a single command against the simulation.
func (in *Input) Apply(cmd Command) {
	sim := in.r.sim
	switch cmd {
	case CommandAddPoint:
		x, y := ebiten.CursorPosition()
		in.addPoint(in.r.screenToWorld(x, y))
	case CommandStart:
		if sim.Started() {
			// Already running: advance by hand.
			_ = sim.Step()
			return
		}
		if err := sim.Start(); err != nil {
			in.r.setStatus("cannot start: %v", err)
			return
		}
		in.r.setStatus("running %s", sim.RunID())
	case CommandStop:
		if sim.Started() {
			sim.Stop()
			in.r.setStatus("stopped")
			return
		}
		if err := sim.ClearNodes(); err == nil {
			in.r.setStatus("points cleared")
		}
	case CommandToggleTurbo:
		sim.SetTurbo(!sim.Config().Run.Turbo)
	case CommandTogglePause:
		sim.SetPaused(!sim.Config().Run.Paused)
	}
}

func (in *Input) addPoint(pos common.Vector) {
	_, err := in.r.sim.AddNode(pos)
	switch {
	case errors.Is(err, simulation.ErrRunning):
		in.r.setStatus("stop the run before adding points")
	case err != nil:
		in.r.setStatus("cannot add point: %v", err)
	default:
		in.r.setStatus("")
	}
}
