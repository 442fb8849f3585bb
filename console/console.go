// Package console drives a session from typed commands, one per line.
// Verbs are matched loosely so short forms and small typos still resolve.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/game"
	"github.com/KevinA2505/Emerald/systems"
)

// Session is the part of a game the console controls.
type Session interface {
	Start()
	Started() bool
	Update(dt float64)
	SetIntent(systems.MoveIntent)
	Look(dYaw, dPitch float64)
	Equip(id string) bool
	Equipped() (weapon, gadget string)
	Inventory() []components.Item
	Swing() bool
	SwingProgress() float64
	Interact() bool
	Mode() game.AttackMode
	ToggleAttackMode() game.AttackMode
	BeginCharge() bool
	ChargeProgress() float64
	ReleaseCharge() (string, bool)
	BeginConsume() bool
	ConsumeProgress() float64
	Player() systems.Player
	World() *systems.World
	Resources() components.Resources
	Tick() int32
	SimTime() float64
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotStarted     = errors.New("session not started")
	ErrRejected       = errors.New("action rejected")
)

// Console parses and executes commands against a session.
type Console struct {
	s        Session
	frameSec float64
	verbs    matcher
	commands map[string]command
}

// New creates a console that steps s in frames of frameSec seconds.
func New(s Session, frameSec float64) *Console {
	c := &Console{s: s, frameSec: frameSec, commands: make(map[string]command)}
	for _, def := range commandDefs {
		c.verbs.add(def.Canonical, def.Aliases...)
		c.commands[def.Canonical] = def
	}
	return c
}

// Exec runs one command line and returns a short report.
func (c *Console) Exec(line string) (string, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return "", nil
	}
	m, ok := c.verbs.match(fields[0])
	if !ok || m.Score < 0.5 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	def := c.commands[m.Canonical]
	args := fields[1:]
	if len(args) < def.MinArgs || (def.MaxArgs >= 0 && len(args) > def.MaxArgs) {
		return "", fmt.Errorf("%s: usage: %s", def.Canonical, def.Usage)
	}
	if def.NeedsStart && !c.s.Started() {
		return "", fmt.Errorf("%s: %w", def.Canonical, ErrNotStarted)
	}
	if m.Source != "exact" {
		slog.Debug("command matched", "input", fields[0], "command", m.Canonical, "source", m.Source, "score", m.Score)
	}
	out, err := def.run(c, args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", def.Canonical, err)
	}
	return out, nil
}

// Run executes a script. Blank lines and lines starting with # are skipped.
// Execution stops at the first failing line.
func (c *Console) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := c.Exec(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		slog.Info("command", "line", n, "input", line, "result", out)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

// step advances the session by n frames.
func (c *Console) step(n int) {
	for range n {
		c.s.Update(c.frameSec)
	}
}
