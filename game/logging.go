package game

import (
	"log/slog"

	"github.com/KevinA2505/Emerald/components"
)

// logWorld logs a summary of the generated world.
func (g *Game) logWorld() {
	var trees, rocks, plants, fruiting int
	for _, a := range g.world.Assets {
		switch a.Category {
		case components.CategoryTree:
			trees++
		case components.CategoryRock:
			rocks++
		case components.CategoryPlant:
			plants++
			if g.hasFruit(a.ID) {
				fruiting++
			}
		}
	}
	slog.Info("world generated",
		"seed", g.rngSeed,
		"trees", trees,
		"rocks", rocks,
		"plants", plants,
		"fruiting", fruiting,
		"ponds", len(g.world.Ponds),
		"mountains", len(g.world.Mountains),
	)
}

// LogState logs the player and session state.
func (g *Game) LogState() {
	weapon, gadget := g.Equipped()
	slog.Info("state",
		"tick", g.tick,
		"sim_time", g.simTime,
		"position", []float64{g.player.Position.X, g.player.Position.Y, g.player.Position.Z},
		"grounded", g.player.Grounded,
		"in_water", g.player.InWater,
		"mode", g.mode.String(),
		"weapon", weapon,
		"gadget", gadget,
		"resources", g.resources,
		"inventory", g.inventory.Len(),
		"in_flight", g.projectiles.Flying(),
	)
}
