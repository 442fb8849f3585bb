package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/renderer"
	"github.com/KevinA2505/Emerald/ui"
)

const controlsText = "WASD move | Shift sprint | Space jump | LMB swing/throw | E harvest | H mode | Q eat | Tab inventory | M map"

// graphics holds the renderers used in windowed mode.
type graphics struct {
	sky       *renderer.SkyRenderer
	scene     *renderer.SceneRenderer
	minimap   *renderer.MapRenderer
	hud       *ui.HUD
	inventory *ui.InventoryPanel

	screenW, screenH int32
	showMap          bool
	inventoryOpen    bool
	mouseLocked      bool
}

func newGraphics(g *Game) *graphics {
	cfg := config.Cfg()
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	return &graphics{
		sky:       renderer.NewSkyRenderer(w, h),
		scene:     renderer.NewSceneRenderer(),
		minimap:   renderer.NewMapRenderer(w, 200, cfg.Derived.MountainRadius),
		hud:       ui.NewHUD(),
		inventory: ui.NewInventoryPanel(),
		screenW:   w,
		screenH:   h,
		showMap:   true,
	}
}

func (v *graphics) unload() {
	v.sky.Unload()
}

// frame collects the renderer input for the current state.
func (g *Game) frame() renderer.Frame {
	origin, dir := g.eye()
	return renderer.Frame{
		Eye:         origin,
		Forward:     dir,
		Time:        g.simTime,
		Assets:      g.world.Assets,
		Mountains:   g.world.Mountains,
		Ponds:       g.world.Ponds,
		Trees:       g.trees,
		Rocks:       g.rocks,
		Plants:      g.plants,
		Projectiles: g.projectiles.Snapshot(),
		MapLimit:    config.Cfg().World.MapLimit,
	}
}

// itemName returns the display name of an inventory entry.
func (g *Game) itemName(id string) string {
	if it, ok := g.inventory.Get(id); ok {
		return it.Name
	}
	return ""
}

// Draw renders the game state.
func (g *Game) Draw() {
	v := g.view
	if v == nil {
		return
	}
	g.perfCollector.RecordFrame()
	f := g.frame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.sky.Draw(float32(g.simTime), float32(g.player.Pitch))
	v.scene.Draw(f)
	if v.showMap {
		v.minimap.Draw(f, g.player.Yaw)
	}

	v.hud.Draw(ui.HUDData{
		Resources: g.resources,
		Weapon:    g.itemName(g.weaponID),
		Gadget:    g.itemName(g.gadgetID),
		Mode:      g.mode.String(),
		Charge:    g.ChargeProgress(),
		Consume:   g.ConsumeProgress(),
		LookingAt: g.lookingAt,
		InWater:   g.player.InWater,
		Tick:      g.tick,
		FPS:       rl.GetFPS(),
		Started:   g.started,
	}, v.screenW, v.screenH)
	v.hud.DrawControls(v.screenW, v.screenH, controlsText)

	if v.inventoryOpen {
		clicked := v.inventory.Draw(g.inventory.Items(), g.inventory.Capacity(), g.weaponID, g.gadgetID, v.screenW, v.screenH)
		if clicked != "" && g.Equip(clicked) {
			g.setInventoryOpen(false)
		}
	}

	rl.EndDrawing()
}
