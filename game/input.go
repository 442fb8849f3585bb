package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KevinA2505/Emerald/systems"
)

const mouseSensitivity = 0.0025

// HandleInput processes keyboard and mouse input in windowed mode.
func (g *Game) HandleInput() {
	v := g.view
	if v == nil {
		return
	}
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.showMap = !v.showMap
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && v.showMap {
		v.minimap.Zoom(1 + wheel*0.1)
	}

	if !g.started {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.Start()
			g.lockMouse(true)
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.setInventoryOpen(!v.inventoryOpen)
	}
	if v.inventoryOpen {
		return
	}

	g.handleMovement()
	g.handleActions()
}

// handleMovement maps WASD and mouse look onto the player.
func (g *Game) handleMovement() {
	g.SetIntent(systems.MoveIntent{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Sprint:  rl.IsKeyDown(rl.KeyLeftShift),
		Jump:    rl.IsKeyPressed(rl.KeySpace) || g.intent.Jump,
	})

	delta := rl.GetMouseDelta()
	g.Look(-float64(delta.X)*mouseSensitivity, -float64(delta.Y)*mouseSensitivity)
}

// handleActions maps the action keys and mouse buttons.
func (g *Game) handleActions() {
	if rl.IsKeyPressed(rl.KeyH) {
		g.ToggleAttackMode()
	}
	if rl.IsKeyPressed(rl.KeyE) {
		g.Interact()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		g.BeginConsume()
	}

	switch g.mode {
	case ModeSlash:
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.Swing()
		}
	case ModeThrow:
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.BeginCharge()
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			g.ReleaseCharge()
		}
	}
}

// setInventoryOpen shows or hides the inventory, freeing the cursor while open.
func (g *Game) setInventoryOpen(open bool) {
	if g.view == nil {
		return
	}
	g.view.inventoryOpen = open
	g.SetBlockInput(open)
	g.SetIntent(systems.MoveIntent{})
	g.lockMouse(!open)
}

func (g *Game) lockMouse(lock bool) {
	v := g.view
	if v.mouseLocked == lock {
		return
	}
	v.mouseLocked = lock
	if lock {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	v := g.view
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW, v.screenH = w, h
	v.sky.Resize(float32(w), float32(h))
	v.minimap.Resize(w)
}
