package visualization

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	pointRadiusOnScreen = 10.0 // Radius of a node on screen
	antRadiusOnScreen   = 5.0  // Radius of an ant on screen
	trailWidth          = 5.0
	tourWidth           = 2.0
	padding             = 50.0 // Margin between the world and the window edges
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	pointColor      = color.RGBA{255, 255, 255, 255}
	antColor        = color.RGBA{255, 0, 0, 255}
	trailColor      = color.RGBA{0, 0, 170, 255}
	weightColor     = color.RGBA{255, 255, 255, 255}
	tourColor       = color.RGBA{255, 255, 255, 255}
	bestTourColor   = color.RGBA{255, 0, 0, 255}
)

// Renderer implements ebiten.Game. It drives the simulation from Update and
// draws a snapshot of it in Draw, so every simulation call happens on the
// ebiten update goroutine.
type Renderer struct {
	sim      *simulation.Simulation
	input    *Input
	lastTick time.Time
	snapshot simulation.Snapshot
	status   string // Last control message shown in the HUD

	screenWidth  int
	screenHeight int

	// Transformation parameters
	scale   float64
	offsetX float64
	offsetY float64
}

// NewRenderer creates a new Ebiten renderer.
func NewRenderer(sim *simulation.Simulation) *Renderer {
	r := &Renderer{sim: sim, scale: 1}
	r.input = NewInput(r)
	return r
}

// Update is called every tick. It applies user input, advances the simulation
// and takes the snapshot drawn by the next Draw.
func (r *Renderer) Update() error {
	r.calculateTransform()
	r.input.Update()
	r.advance(time.Now())
	r.snapshot = r.sim.Snapshot()
	return nil
}

// advance issues the simulation ticks due at now. Turbo mode runs a batch of
// ticks per frame; otherwise ticks are spaced by the configured interval.
func (r *Renderer) advance(now time.Time) {
	if !r.sim.Started() {
		return
	}
	cfg := r.sim.Config()
	if cfg.Run.Turbo {
		for i := 0; i < max(cfg.View.TurboTicksPerFrame, 1); i++ {
			r.sim.Tick()
		}
		r.lastTick = now
		return
	}
	if now.Sub(r.lastTick) >= cfg.Run.TickInterval {
		r.sim.Tick()
		r.lastTick = now
	}
}

// setStatus records a message for the HUD.
func (r *Renderer) setStatus(format string, args ...any) {
	r.status = fmt.Sprintf(format, args...)
}

// calculateTransform fits the configured world and every node onto the screen.
func (r *Renderer) calculateTransform() {
	world := r.sim.Config().Run.World
	minX, maxX, minY, maxY := world[0], world[1], world[2], world[3]

	for _, obj := range r.sim.GetAllObjects() {
		pos := obj.GetPosition()
		minX = math.Min(minX, pos.X())
		maxX = math.Max(maxX, pos.X())
		minY = math.Min(minY, pos.Y())
		maxY = math.Max(maxY, pos.Y())
	}

	worldWidth := maxX - minX
	worldHeight := maxY - minY
	if worldWidth == 0 {
		worldWidth = 1
	}
	if worldHeight == 0 {
		worldHeight = 1
	}

	scaleX := (float64(r.screenWidth) - 2*padding) / worldWidth
	scaleY := (float64(r.screenHeight) - 2*padding) / worldHeight
	r.scale = math.Min(scaleX, scaleY) // Preserve aspect ratio
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		r.scale = 1.0
	}

	centerX := (minX + maxX) / 2.0
	centerY := (minY + maxY) / 2.0
	r.offsetX = float64(r.screenWidth)/2.0 - centerX*r.scale
	r.offsetY = float64(r.screenHeight)/2.0 - centerY*r.scale
}

// worldToScreen converts world coordinates to screen coordinates.
func (r *Renderer) worldToScreen(pos common.Vector) (float32, float32) {
	return float32(pos.X()*r.scale + r.offsetX), float32(pos.Y()*r.scale + r.offsetY)
}

// screenToWorld converts screen coordinates to world coordinates.
func (r *Renderer) screenToWorld(x, y int) common.Vector {
	return common.NewVector((float64(x)-r.offsetX)/r.scale, (float64(y)-r.offsetY)/r.scale)
}

// Draw is called every frame to render the last snapshot.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := r.snapshot
	view := r.sim.Config().View
	positions := make(map[int]common.Vector, len(snap.Nodes))
	for _, n := range snap.Nodes {
		positions[n.ID] = n.Position
	}

	if view.ShowPheromone {
		minimum := r.sim.Config().Pheromone.Minimum
		for _, t := range snap.Trails {
			alpha := common.Clamp(common.Normalize(t.Value, simulation.MaxPheromone, minimum), 0, 1)
			ax, ay := r.worldToScreen(positions[t.NodeA])
			bx, by := r.worldToScreen(positions[t.NodeB])
			vector.StrokeLine(screen, ax, ay, bx, by, trailWidth, withAlpha(trailColor, alpha), true)
		}
	}

	for _, n := range snap.Nodes {
		x, y := r.worldToScreen(n.Position)
		vector.DrawFilledCircle(screen, x, y, pointRadiusOnScreen, pointColor, true)
	}

	for _, ant := range snap.Ants {
		if view.FocusedAnt != -1 && view.FocusedAnt != ant.ID {
			continue
		}
		r.drawAnt(screen, ant, positions)
	}

	if view.ShowBestTour && snap.Best != nil {
		r.drawTour(screen, snap.Best.Nodes, positions, bestTourColor)
	}

	r.drawDebugInfo(screen)
}

// drawAnt draws the ant, and either its pending choices or its finished tour.
func (r *Renderer) drawAnt(screen *ebiten.Image, ant simulation.AntView, positions map[int]common.Vector) {
	x, y := r.worldToScreen(ant.Position)
	if ant.State == simulation.AntDone {
		r.drawTour(screen, ant.Path, positions, tourColor)
	} else {
		for _, w := range ant.Weights {
			tx, ty := r.worldToScreen(positions[w.Node])
			vector.StrokeLine(screen, x, y, tx, ty, tourWidth, withAlpha(weightColor, common.Clamp(w.Score, 0, 1)), true)
		}
	}
	vector.DrawFilledCircle(screen, x, y, antRadiusOnScreen, antColor, true)
}

// drawTour draws a closed tour.
func (r *Renderer) drawTour(screen *ebiten.Image, tour []int, positions map[int]common.Vector, clr color.RGBA) {
	if len(tour) < 2 {
		return
	}
	for i := range tour {
		ax, ay := r.worldToScreen(positions[tour[i]])
		bx, by := r.worldToScreen(positions[tour[(i+1)%len(tour)]])
		vector.StrokeLine(screen, ax, ay, bx, by, tourWidth, clr, true)
	}
}

func (r *Renderer) drawDebugInfo(screen *ebiten.Image) {
	snap := r.snapshot
	msg := fmt.Sprintf("FPS: %.1f, TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	msg += fmt.Sprintf("Simulation Step: %d (%s)\n", snap.Generation, snap.Phase)
	if r.sim.Config().View.ShowBestTour && snap.Best != nil {
		msg += fmt.Sprintf("Best Distance: %.3f\n", snap.Best.Length)
	}
	if snap.LastStats != nil {
		msg += fmt.Sprintf("Last generation: mean %.1f, min %.1f, stddev %.1f\n",
			snap.LastStats.Mean, snap.LastStats.Min, snap.LastStats.StdDev)
	}
	msg += fmt.Sprintf("Points: %d, Ants: %d, Trails: %d\n", len(snap.Nodes), len(snap.Ants), len(snap.Trails))

	state := "stopped"
	if snap.Started {
		state = "running"
	}
	if snap.Paused {
		state += ", paused"
	}
	if snap.Turbo {
		state += ", turbo"
	}
	msg += fmt.Sprintf("State: %s\n", state)
	msg += helpText
	if r.status != "" {
		msg += "\n" + r.status
	}

	ebitenutil.DebugPrint(screen, msg)
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := uint8(alpha * 255)
	// premultiplied alpha
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}
