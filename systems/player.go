package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/config"
)

// MoveIntent is the movement input for one frame.
type MoveIntent struct {
	Forward, Back, Left, Right bool
	Sprint                     bool
	Jump                       bool
}

// Player is the first-person body. Position is the eye point.
type Player struct {
	Position  r3.Vec
	VelocityY float64
	Grounded  bool
	InWater   bool
	Yaw       float64 // radians about Y; 0 looks down -Z
	Pitch     float64 // radians; positive looks up

	cfg      config.PlayerConfig
	mapLimit float64
	submerge float64
}

// NewPlayer creates a player standing at the origin.
func NewPlayer() *Player {
	cfg := config.Cfg()
	return &Player{
		Position: r3.Vec{Y: cfg.Player.EyeHeight},
		Grounded: true,
		cfg:      cfg.Player,
		mapLimit: cfg.World.MapLimit,
		submerge: cfg.Derived.Submersion,
	}
}

// Feet returns the Y coordinate of the player's feet, corrected for submersion.
func (p *Player) Feet() float64 {
	y := p.Position.Y - p.cfg.EyeHeight
	if p.InWater {
		y += p.submerge
	}
	return y
}

// Forward returns the unit view direction.
func (p *Player) Forward() r3.Vec {
	cp := math.Cos(p.Pitch)
	return r3.Vec{
		X: -math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// Look rotates the view. Pitch is clamped just short of straight up or down.
func (p *Player) Look(dYaw, dPitch float64) {
	const limit = math.Pi/2 - 0.01
	p.Yaw = normalizeAngle(p.Yaw + dYaw)
	p.Pitch = math.Max(-limit, math.Min(limit, p.Pitch+dPitch))
}

// Step advances the player by one frame. Vertical motion always runs;
// horizontal motion and jumping are skipped when blocked is set.
func (p *Player) Step(intent MoveIntent, blocked bool, t *Terrain) {
	ground := t.GroundAt(p.Position.X, p.Position.Z)
	p.InWater = ground.InWater

	target := ground.Height + p.cfg.EyeHeight
	if p.InWater {
		target -= p.submerge
	}

	if p.Position.Y > target+p.cfg.GroundEpsilon {
		p.VelocityY -= p.cfg.Gravity
		p.Grounded = false
	} else {
		p.Position.Y = math.Max(p.Position.Y, target)
		if p.VelocityY <= 0 {
			p.VelocityY = 0
			p.Grounded = true
		}
	}
	p.Position.Y += p.VelocityY

	if blocked {
		return
	}

	if intent.Jump && p.Grounded {
		p.VelocityY = p.cfg.JumpForce
		if p.InWater {
			p.VelocityY *= p.cfg.WaterJump
		}
		p.Grounded = false
	}

	speed := p.cfg.WalkSpeed
	if intent.Sprint {
		speed = p.cfg.SprintSpeed
	}
	speed *= ground.SpeedMod

	dir := p.moveDirection(intent)
	if dir == (r3.Vec{}) {
		return
	}
	step := r3.Scale(speed, dir)

	nextX := p.Position.X + step.X
	nextZ := p.Position.Z + step.Z
	if p.canMoveTo(nextX, p.Position.Z, t) {
		p.Position.X = nextX
	}
	if p.canMoveTo(p.Position.X, nextZ, t) {
		p.Position.Z = nextZ
	}
}

// moveDirection returns the unit horizontal direction for the intent,
// rotated by the view yaw. Zero when keys cancel out.
func (p *Player) moveDirection(intent MoveIntent) r3.Vec {
	var local r3.Vec
	if intent.Forward {
		local.Z--
	}
	if intent.Back {
		local.Z++
	}
	if intent.Left {
		local.X--
	}
	if intent.Right {
		local.X++
	}
	if local == (r3.Vec{}) {
		return local
	}
	local = r3.Unit(local)

	sin, cos := math.Sincos(p.Yaw)
	return r3.Vec{
		X: local.X*cos + local.Z*sin,
		Z: -local.X*sin + local.Z*cos,
	}
}

// canMoveTo validates a horizontal position against the map bounds,
// mountains, trees and the step height limit.
func (p *Player) canMoveTo(x, z float64, t *Terrain) bool {
	if math.Abs(x) > p.mapLimit || math.Abs(z) > p.mapLimit {
		return false
	}
	if t.Blocked(x, z, p.cfg.Radius) {
		return false
	}
	return t.GroundAt(x, z).Height <= p.Feet()+p.cfg.StepHeight
}
