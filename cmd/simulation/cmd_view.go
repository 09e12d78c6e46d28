package main

import (
	"antcolony-sim/internal/visualization"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer",
		Long: `view opens a window showing the points, the ants and the pheromone trails.

Click or press Space to add a point at the cursor, Enter to start (or step
while running), Escape to stop (or clear the points while stopped), T to
toggle turbo and P to pause.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, _, err := newSimulationFromFlags(cmd)
			if err != nil {
				return err
			}

			view := sim.Config().View
			ebiten.SetWindowSize(view.Width, view.Height)
			ebiten.SetWindowTitle("Ant Colony TSP")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			return ebiten.RunGame(visualization.NewRenderer(sim))
		},
	}
}
