package game

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/resolve"
	"github.com/KevinA2505/Emerald/telemetry"
)

// Update advances the session by dt seconds.
func (g *Game) Update(dt float64) {
	if dt <= 0 {
		return
	}
	frames := dt / g.frameSec
	if g.tick == 0 {
		frames = 1
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.updatePlayer()

	g.perfCollector.StartPhase(telemetry.PhaseCombat)
	g.updateCombat(dt, frames)

	g.perfCollector.StartPhase(telemetry.PhaseProjectiles)
	g.updateProjectiles(dt)

	g.perfCollector.StartPhase(telemetry.PhaseAnimation)
	g.updateAnimation(frames)

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updatePlayer moves the body and refreshes the interact hint.
func (g *Game) updatePlayer() {
	g.player.Step(g.intent, !g.InputEnabled(), g.terrain)
	g.intent.Jump = false

	origin, dir := g.eye()
	_, g.lookingAt = g.targeter.Harvestable(origin, dir, g.interactRange, g.hasFruit)
}

func (g *Game) hasFruit(id int) bool {
	st, ok := g.plants[id]
	return ok && st.HasFruit && st.FruitCount > 0
}

// updateCombat drives the swing, charge and consumption timers.
func (g *Game) updateCombat(dt, frames float64) {
	wasActive := g.swing.Active()
	if g.swing.Advance(dt) {
		g.tryConnect()
	}
	if wasActive && !g.swing.Active() && !g.swing.Connected() {
		g.collector.Record(telemetry.NewMissEvent(g.tick))
	}

	g.charger.Advance(dt)

	if g.consumer.Advance(frames) {
		g.finishConsume()
	}
}

// tryConnect hits whatever the swing ray finds. The swing only stops on an
// accepted hit, so a wrong-tool target leaves the window open.
func (g *Game) tryConnect() {
	origin, dir := g.eye()
	target, ok := g.targeter.Swing(origin, dir, g.actionRange)
	if !ok {
		return
	}
	var hit bool
	switch target.Asset.Category {
	case components.CategoryTree:
		hit = g.HitTree(target.Asset.ID)
	case components.CategoryRock:
		hit = g.HitRock(target.Asset.ID)
	case components.CategoryPlant:
		hit = g.HitPlant(target.Asset.ID)
	}
	if hit {
		g.swing.Connect(target.Asset.Category)
	}
}

// updateProjectiles integrates flights and records impacts.
func (g *Game) updateProjectiles(dt float64) {
	for _, h := range g.projectiles.Update(dt) {
		g.collector.Record(telemetry.NewStuckEvent(g.tick, h.Asset))
	}
}

// updateAnimation decays falling trees and shaking rocks.
func (g *Game) updateAnimation(frames float64) {
	seeds, removed := g.animator.AnimateTrees(g.trees, g.activeTrees, frames, g.rng)
	for _, id := range removed {
		g.collector.Record(telemetry.NewTreeRemovedEvent(g.tick, id))
	}
	g.gain(seeds)
	g.animator.AnimateRocks(g.rocks, g.activeRocks, frames)
}

// gain credits resources to the player and the stats window.
func (g *Game) gain(d components.ResourceDelta) {
	if len(d) == 0 {
		return
	}
	g.resources.Apply(d)
	g.collector.RecordGain(d)
}

// HitTree applies one hit with the equipped weapon to a tree.
// Returns false when the hit had no effect.
func (g *Game) HitTree(id int) bool {
	st, ok := g.trees[id]
	if !ok {
		return false
	}
	out := g.rules.TreeHit(&st, g.equipped, g.rng)
	if out == nil {
		return false
	}
	g.trees[id] = out.Next
	g.gain(out.Resources)
	g.collector.Record(telemetry.NewHitEvent(g.tick, id, components.CategoryTree, out.Resources.Total()))
	if out.Activate {
		g.activeTrees.Add(id)
		g.collector.Record(telemetry.Event{Type: telemetry.EventTreeFelled, Tick: g.tick, AssetID: id, Category: components.CategoryTree})
		slog.Debug("tree felled", "id", id, "tick", g.tick)
	}
	return true
}

// HitRock applies one hit with the equipped weapon to a rock.
func (g *Game) HitRock(id int) bool {
	st, ok := g.rocks[id]
	if !ok {
		return false
	}
	out := g.rules.RockHit(&st, g.equipped, g.rng)
	if out == nil {
		return false
	}
	g.rocks[id] = out.Next
	g.gain(out.Resources)
	g.collector.Record(telemetry.NewHitEvent(g.tick, id, components.CategoryRock, out.Resources.Total()))
	if out.Activate {
		g.activeRocks.Add(id)
	}
	if out.Next.IsRemoved {
		g.collector.Record(telemetry.Event{Type: telemetry.EventRockBroken, Tick: g.tick, AssetID: id, Category: components.CategoryRock})
		slog.Debug("rock broken", "id", id, "tick", g.tick)
	}
	return true
}

// HitPlant applies one knife hit to a plant.
func (g *Game) HitPlant(id int) bool {
	st, ok := g.plants[id]
	if !ok {
		return false
	}
	out := g.rules.PlantHit(&st, g.equipped, g.rng)
	if out == nil {
		return false
	}
	g.plants[id] = out.Next
	g.gain(out.Resources)
	g.collector.Record(telemetry.NewHitEvent(g.tick, id, components.CategoryPlant, out.Resources.Total()))
	if out.Next.IsRemoved {
		g.collector.Record(telemetry.Event{Type: telemetry.EventPlantCleared, Tick: g.tick, AssetID: id, Category: components.CategoryPlant})
	}
	return true
}

// HarvestPlant picks all fruit from a plant into the inventory.
// The plant keeps its fruit when the inventory has no room.
func (g *Game) HarvestPlant(id int) bool {
	st, ok := g.plants[id]
	if !ok {
		return false
	}
	out := resolve.Harvest(&st)
	if out == nil {
		return false
	}
	if !g.inventory.Add(out.Item) {
		slog.Debug("inventory full", "item", out.Item.ID)
		return false
	}
	g.plants[id] = out.Next
	g.collector.Record(telemetry.NewHarvestEvent(g.tick, id, out.Item.Count))
	return true
}

// Interact harvests the fruit-bearing plant in front of the player.
func (g *Game) Interact() bool {
	if !g.InputEnabled() {
		return false
	}
	origin, dir := g.eye()
	id, ok := g.targeter.Harvestable(origin, dir, g.interactRange, g.hasFruit)
	if !ok {
		return false
	}
	return g.HarvestPlant(id)
}

// Equip puts an inventory item into its slot. Weapons replace the weapon,
// consumables replace the gadget. Resources cannot be equipped.
func (g *Game) Equip(id string) bool {
	it, ok := g.inventory.Get(id)
	if !ok {
		return false
	}
	switch it.Category {
	case components.ItemWeapon:
		g.weaponID = it.ID
		g.equipped = it.Equipped()
	case components.ItemGadget:
		g.gadgetID = it.ID
		g.consumer.Cancel()
	default:
		return false
	}
	slog.Debug("equipped", "item", it.ID, "category", it.Category)
	return true
}

// Swing starts a melee swing with the equipped weapon.
func (g *Game) Swing() bool {
	if !g.InputEnabled() || g.mode != ModeSlash {
		return false
	}
	return g.swing.Start(g.equipped.Tool)
}

// ToggleAttackMode switches between slashing and throwing.
func (g *Game) ToggleAttackMode() AttackMode {
	if g.mode == ModeSlash {
		g.mode = ModeThrow
	} else {
		g.mode = ModeSlash
	}
	g.charger.Cancel()
	return g.mode
}

// BeginCharge starts charging a throw.
func (g *Game) BeginCharge() bool {
	if !g.InputEnabled() || g.mode != ModeThrow || g.weaponID == "" || g.charger.Charging() {
		return false
	}
	g.charger.Begin()
	return true
}

// ReleaseCharge throws the equipped weapon with the accumulated power.
// Returns the new projectile ID.
func (g *Game) ReleaseCharge() (string, bool) {
	power, ok := g.charger.Release()
	if !ok {
		return "", false
	}
	origin, dir := g.eye()
	rec := components.ThrownProjectile{
		ID:        "thrown_" + uuid.NewString(),
		Position:  origin,
		Direction: dir,
		Rotation:  [3]float64{g.player.Pitch, g.player.Yaw, 0},
		Power:     power,
	}
	g.SpawnProjectile(rec)
	return rec.ID, true
}

// SpawnProjectile launches a thrown projectile from an explicit record.
func (g *Game) SpawnProjectile(rec components.ThrownProjectile) {
	g.projectiles.Spawn(rec)
	g.collector.Record(telemetry.NewThrowEvent(g.tick, rec.Power))
}

// BeginConsume starts eating the equipped gadget.
func (g *Game) BeginConsume() bool {
	if !g.InputEnabled() || g.gadgetID == "" {
		return false
	}
	it, ok := g.inventory.Get(g.gadgetID)
	if !ok || !it.Consumable {
		return false
	}
	return g.consumer.Begin()
}

// finishConsume uses up one unit of the gadget and unequips it when none remain.
func (g *Game) finishConsume() {
	left, ok := g.inventory.Consume(g.gadgetID)
	if !ok {
		g.gadgetID = ""
		return
	}
	g.collector.Record(telemetry.Event{Type: telemetry.EventConsume, Tick: g.tick, AssetID: -1})
	slog.Debug("consumed", "item", g.gadgetID, "left", left)
	if left == 0 {
		g.gadgetID = ""
	}
}
