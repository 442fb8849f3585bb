package console

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/game"
	"github.com/KevinA2505/Emerald/systems"
)

// command describes one console verb. MaxArgs < 0 means unbounded.
type command struct {
	Canonical  string
	Aliases    []string
	Usage      string
	MinArgs    int
	MaxArgs    int
	NeedsStart bool
	run        func(c *Console, args []string) (string, error)
}

// maxWaitFrames bounds loops that wait for a timer to finish.
const maxWaitFrames = 2000

var commandDefs []command

func init() {
	commandDefs = []command{
		{Canonical: "help", Aliases: []string{"?", "commands"}, Usage: "help", MaxArgs: 0, run: (*Console).help},
		{Canonical: "start", Aliases: []string{"begin"}, Usage: "start", MaxArgs: 0, run: (*Console).start},
		{Canonical: "status", Aliases: []string{"state", "where"}, Usage: "status", MaxArgs: 0, run: (*Console).status},
		{Canonical: "inventory", Aliases: []string{"inv", "items"}, Usage: "inventory", MaxArgs: 0, run: (*Console).inventory},
		{Canonical: "equip", Aliases: []string{"wield", "hold"}, Usage: "equip <item>", MinArgs: 1, MaxArgs: -1, run: (*Console).equip},
		{Canonical: "turn", Aliases: []string{"look", "rotate"}, Usage: "turn <yaw degrees> [pitch degrees]", MinArgs: 1, MaxArgs: 2, NeedsStart: true, run: (*Console).turn},
		{Canonical: "face", Aliases: []string{"aim"}, Usage: "face <asset id>", MinArgs: 1, MaxArgs: 1, NeedsStart: true, run: (*Console).face},
		{Canonical: "walk", Aliases: []string{"move", "go"}, Usage: "walk <frames> [forward|back|left|right]", MinArgs: 1, MaxArgs: 2, NeedsStart: true, run: (*Console).walk},
		{Canonical: "sprint", Aliases: []string{"run"}, Usage: "sprint <frames> [forward|back|left|right]", MinArgs: 1, MaxArgs: 2, NeedsStart: true, run: (*Console).sprint},
		{Canonical: "jump", Usage: "jump", MaxArgs: 0, NeedsStart: true, run: (*Console).jump},
		{Canonical: "swing", Aliases: []string{"attack", "chop", "mine", "slash"}, Usage: "swing", MaxArgs: 0, NeedsStart: true, run: (*Console).swing},
		{Canonical: "harvest", Aliases: []string{"interact", "pick", "gather"}, Usage: "harvest", MaxArgs: 0, NeedsStart: true, run: (*Console).harvest},
		{Canonical: "mode", Aliases: []string{"stance"}, Usage: "mode [slash|throw]", MaxArgs: 1, run: (*Console).mode},
		{Canonical: "throw", Aliases: []string{"toss", "hurl"}, Usage: "throw [power 0-1]", MaxArgs: 1, NeedsStart: true, run: (*Console).throw},
		{Canonical: "eat", Aliases: []string{"consume"}, Usage: "eat", MaxArgs: 0, NeedsStart: true, run: (*Console).eat},
		{Canonical: "wait", Aliases: []string{"idle"}, Usage: "wait <seconds>", MinArgs: 1, MaxArgs: 1, run: (*Console).wait},
	}
}

func (c *Console) help(_ []string) (string, error) {
	lines := make([]string, 0, len(commandDefs))
	for _, def := range commandDefs {
		lines = append(lines, def.Usage)
	}
	return strings.Join(lines, "; "), nil
}

func (c *Console) start(_ []string) (string, error) {
	c.s.Start()
	return "started", nil
}

func (c *Console) status(_ []string) (string, error) {
	p := c.s.Player()
	weapon, gadget := c.s.Equipped()
	r := c.s.Resources()
	return fmt.Sprintf("tick=%d t=%.2fs pos=(%.2f,%.2f,%.2f) yaw=%.0f pitch=%.0f mode=%s weapon=%q gadget=%q wood=%d fiber=%d sticks=%d stones=%d seeds=%d",
		c.s.Tick(), c.s.SimTime(),
		p.Position.X, p.Position.Y, p.Position.Z,
		degrees(p.Yaw), degrees(p.Pitch),
		c.s.Mode(), weapon, gadget,
		r.Wood, r.Fiber, r.Sticks, r.Stones, r.Seeds), nil
}

func (c *Console) inventory(_ []string) (string, error) {
	items := c.s.Inventory()
	if len(items) == 0 {
		return "empty", nil
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s x%d", it.ID, it.Count)
	}
	return strings.Join(parts, ", "), nil
}

// equip resolves a loosely typed item ID or name against the inventory.
func (c *Console) equip(args []string) (string, error) {
	var items matcher
	for _, it := range c.s.Inventory() {
		items.add(it.ID, it.Name)
	}
	in := strings.Join(args, " ")
	m, ok := items.match(in)
	if !ok {
		return "", fmt.Errorf("no item matching %q", in)
	}
	if !c.s.Equip(m.Canonical) {
		return "", fmt.Errorf("%w: %s cannot be equipped", ErrRejected, m.Canonical)
	}
	return "equipped " + m.Canonical, nil
}

func (c *Console) turn(args []string) (string, error) {
	yaw, err := parseFloat(args[0])
	if err != nil {
		return "", err
	}
	pitch := 0.0
	if len(args) > 1 {
		if pitch, err = parseFloat(args[1]); err != nil {
			return "", err
		}
	}
	c.s.Look(radians(yaw), radians(pitch))
	p := c.s.Player()
	return fmt.Sprintf("yaw=%.0f pitch=%.0f", degrees(p.Yaw), degrees(p.Pitch)), nil
}

// face points the view at the middle of an asset.
func (c *Console) face(args []string) (string, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("bad asset id %q: %w", args[0], err)
	}
	a, ok := c.s.World().Asset(id)
	if !ok {
		return "", fmt.Errorf("no asset %d", id)
	}
	p := c.s.Player()
	yaw, pitch := aimAt(p, a)
	c.s.Look(yaw-p.Yaw, pitch-p.Pitch)
	dist := math.Hypot(a.Position.X-p.Position.X, a.Position.Z-p.Position.Z)
	return fmt.Sprintf("facing %s %d at %.1fm", a.Category, id, dist), nil
}

// aimAt returns the absolute yaw and pitch that look from p at a's midpoint.
func aimAt(p systems.Player, a components.WorldAsset) (yaw, pitch float64) {
	dx := a.Position.X - p.Position.X
	dz := a.Position.Z - p.Position.Z
	dy := a.Position.Y + a.Height/2 - p.Position.Y
	yaw = math.Atan2(-dx, -dz)
	pitch = math.Atan2(dy, math.Hypot(dx, dz))
	return yaw, pitch
}

func (c *Console) walk(args []string) (string, error) {
	return c.move(args, false)
}

func (c *Console) sprint(args []string) (string, error) {
	return c.move(args, true)
}

func (c *Console) move(args []string, sprint bool) (string, error) {
	frames, err := strconv.Atoi(args[0])
	if err != nil || frames < 0 {
		return "", fmt.Errorf("bad frame count %q", args[0])
	}
	intent := systems.MoveIntent{Sprint: sprint}
	dir := "forward"
	if len(args) > 1 {
		dir = args[1]
	}
	switch dir {
	case "forward", "f":
		intent.Forward = true
	case "back", "b":
		intent.Back = true
	case "left", "l":
		intent.Left = true
	case "right", "r":
		intent.Right = true
	default:
		return "", fmt.Errorf("bad direction %q", dir)
	}
	for range frames {
		c.s.SetIntent(intent)
		c.step(1)
	}
	c.s.SetIntent(systems.MoveIntent{})
	p := c.s.Player()
	return fmt.Sprintf("at (%.2f,%.2f,%.2f)", p.Position.X, p.Position.Y, p.Position.Z), nil
}

func (c *Console) jump(_ []string) (string, error) {
	c.s.SetIntent(systems.MoveIntent{Jump: true})
	c.step(1)
	c.s.SetIntent(systems.MoveIntent{})
	return "jumped", nil
}

// swing runs a full swing and reports what it gathered.
func (c *Console) swing(_ []string) (string, error) {
	before := c.s.Resources()
	if !c.s.Swing() {
		return "", fmt.Errorf("%w: no weapon or not in slash mode", ErrRejected)
	}
	for i := 0; i < maxWaitFrames; i++ {
		c.step(1)
		if c.s.SwingProgress() == 0 {
			break
		}
	}
	return gained(before, c.s.Resources()), nil
}

func (c *Console) harvest(_ []string) (string, error) {
	before := countItems(c.s.Inventory())
	if !c.s.Interact() {
		return "", fmt.Errorf("%w: nothing to harvest", ErrRejected)
	}
	return fmt.Sprintf("picked %d", countItems(c.s.Inventory())-before), nil
}

func (c *Console) mode(args []string) (string, error) {
	if len(args) == 0 {
		return c.s.ToggleAttackMode().String(), nil
	}
	var want game.AttackMode
	switch args[0] {
	case "slash":
		want = game.ModeSlash
	case "throw":
		want = game.ModeThrow
	default:
		return "", fmt.Errorf("bad mode %q", args[0])
	}
	if c.s.Mode() != want {
		c.s.ToggleAttackMode()
	}
	return c.s.Mode().String(), nil
}

// throw charges until power is reached and releases.
func (c *Console) throw(args []string) (string, error) {
	power := 1.0
	if len(args) > 0 {
		var err error
		if power, err = parseFloat(args[0]); err != nil {
			return "", err
		}
	}
	if !c.s.BeginCharge() {
		return "", fmt.Errorf("%w: no weapon or not in throw mode", ErrRejected)
	}
	for i := 0; i < maxWaitFrames && c.s.ChargeProgress() < power; i++ {
		c.step(1)
		if c.s.ChargeProgress() >= 1 {
			break
		}
	}
	charge := c.s.ChargeProgress()
	id, ok := c.s.ReleaseCharge()
	if !ok {
		return "", fmt.Errorf("%w: charge lost", ErrRejected)
	}
	return fmt.Sprintf("threw %s at %.2f", id, charge), nil
}

func (c *Console) eat(_ []string) (string, error) {
	_, gadget := c.s.Equipped()
	if !c.s.BeginConsume() {
		return "", fmt.Errorf("%w: nothing edible equipped", ErrRejected)
	}
	for i := 0; i < maxWaitFrames; i++ {
		c.step(1)
		if c.s.ConsumeProgress() == 0 {
			break
		}
	}
	return "ate " + gadget, nil
}

func (c *Console) wait(args []string) (string, error) {
	secs, err := parseFloat(args[0])
	if err != nil || secs < 0 {
		return "", fmt.Errorf("bad duration %q", args[0])
	}
	frames := int(math.Round(secs / c.frameSec))
	c.step(frames)
	return fmt.Sprintf("waited %d frames", frames), nil
}

func gained(before, after components.Resources) string {
	var parts []string
	for _, k := range components.ResourceKinds {
		if d := after.Get(k) - before.Get(k); d > 0 {
			parts = append(parts, fmt.Sprintf("%s+%d", k, d))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " ")
}

func countItems(items []components.Item) int {
	n := 0
	for _, it := range items {
		n += it.Count
	}
	return n
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	return v, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
