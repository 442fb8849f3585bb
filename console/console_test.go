package console

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinA2505/Emerald/components"
	"github.com/KevinA2505/Emerald/config"
	"github.com/KevinA2505/Emerald/game"
	"github.com/KevinA2505/Emerald/systems"
)

func init() {
	config.MustInit("")
}

func newTestConsole(t *testing.T) (*Console, *game.Game) {
	t.Helper()
	g := game.NewGameWithOptions(game.Options{Seed: 7, Headless: true})
	t.Cleanup(g.Unload)
	return New(g, config.Cfg().Derived.FrameSeconds), g
}

func TestVerbMatching(t *testing.T) {
	c, _ := newTestConsole(t)
	tests := []struct {
		in     string
		want   string
		source string
	}{
		{in: "swing", want: "swing", source: "exact"},
		{in: "chop", want: "swing", source: "alias"},
		{in: "inv", want: "inventory", source: "alias"},
		{in: "inventry", want: "inventory", source: "fuzzy"},
		{in: "harv", want: "harvest", source: "prefix"},
		{in: "turnn", want: "turn", source: "fuzzy"},
	}
	for _, tc := range tests {
		m, ok := c.verbs.match(tc.in)
		if !ok {
			t.Fatalf("match(%q) found nothing", tc.in)
		}
		if m.Canonical != tc.want || m.Source != tc.source {
			t.Errorf("match(%q) = %s via %s, want %s via %s", tc.in, m.Canonical, m.Source, tc.want, tc.source)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	c, _ := newTestConsole(t)
	_, err := c.Exec("xyzzy plugh")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Exec(xyzzy) error = %v, want ErrUnknownCommand", err)
	}
}

func TestUsageErrors(t *testing.T) {
	c, _ := newTestConsole(t)
	for _, line := range []string{"turn", "wait", "face 1 2", "jump high"} {
		if _, err := c.Exec(line); err == nil || !strings.Contains(err.Error(), "usage") {
			t.Errorf("Exec(%q) error = %v, want usage error", line, err)
		}
	}
}

func TestActionsNeedStart(t *testing.T) {
	c, _ := newTestConsole(t)
	for _, line := range []string{"swing", "walk 5", "harvest", "throw", "eat"} {
		if _, err := c.Exec(line); !errors.Is(err, ErrNotStarted) {
			t.Errorf("Exec(%q) error = %v, want ErrNotStarted", line, err)
		}
	}
}

func TestEquipLooseNames(t *testing.T) {
	c, g := newTestConsole(t)
	tests := []struct {
		in   string
		want string
	}{
		{in: "equip axe_01", want: "axe_01"},
		{in: "equip Iron Axe", want: "axe_01"},
		{in: "wield pickax", want: "pickaxe_01"},
		{in: "equip survival knif", want: "knife_01"},
	}
	for _, tc := range tests {
		if _, err := c.Exec(tc.in); err != nil {
			t.Fatalf("Exec(%q): %v", tc.in, err)
		}
		if w, _ := g.Equipped(); w != tc.want {
			t.Errorf("after %q weapon = %q, want %q", tc.in, w, tc.want)
		}
	}
}

func TestSwingWithoutWeaponRejected(t *testing.T) {
	c, _ := newTestConsole(t)
	if _, err := c.Exec("start"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Exec("swing"); !errors.Is(err, ErrRejected) {
		t.Fatalf("swing with no weapon error = %v, want ErrRejected", err)
	}
}

func TestWaitAdvancesFrames(t *testing.T) {
	c, g := newTestConsole(t)
	want := int32(math.Round(1 / config.Cfg().Derived.FrameSeconds))
	if _, err := c.Exec("wait 1"); err != nil {
		t.Fatal(err)
	}
	if g.Tick() != want {
		t.Errorf("tick after wait 1 = %d, want %d", g.Tick(), want)
	}
}

func TestModeAndThrowScript(t *testing.T) {
	c, g := newTestConsole(t)
	script := `
# throw the knife upward
start
equip knife
mode throw
turn 0 60
throw 0.5
`
	if err := c.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != game.ModeThrow {
		t.Errorf("mode = %s, want throw", g.Mode())
	}
	if n := len(g.Projectiles()); n != 1 {
		t.Errorf("projectiles = %d, want 1", n)
	}
}

func TestRunReportsLine(t *testing.T) {
	c, _ := newTestConsole(t)
	err := c.Run(strings.NewReader("start\n\nfly away\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "line 3:") {
		t.Fatalf("Run error = %v, want line 3 failure", err)
	}
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Run error does not wrap ErrUnknownCommand: %v", err)
	}
}

func TestAimAt(t *testing.T) {
	p := systems.Player{Position: r3.Vec{Y: 1.6}}
	tests := []struct {
		name      string
		at        r3.Vec
		height    float64
		wantYaw   float64
		wantPitch float64
	}{
		{name: "ahead", at: r3.Vec{Z: -5}, height: 3.2, wantYaw: 0, wantPitch: 0},
		{name: "left", at: r3.Vec{X: -5}, height: 3.2, wantYaw: math.Pi / 2, wantPitch: 0},
		{name: "behind", at: r3.Vec{Z: 5}, height: 3.2, wantYaw: math.Pi, wantPitch: 0},
		{name: "above", at: r3.Vec{Z: -4}, height: 11.2, wantYaw: 0, wantPitch: math.Atan2(4, 4)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := components.WorldAsset{Position: tc.at, Height: tc.height}
			yaw, pitch := aimAt(p, a)
			if math.Abs(math.Abs(yaw)-tc.wantYaw) > 1e-9 || math.Abs(pitch-tc.wantPitch) > 1e-9 {
				t.Errorf("aimAt = (%.3f, %.3f), want (%.3f, %.3f)", yaw, pitch, tc.wantYaw, tc.wantPitch)
			}
		})
	}
}
