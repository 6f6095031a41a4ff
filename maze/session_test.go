package maze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/marblemaze/common"
	"github.com/milk9111/marblemaze/ecs"
	"github.com/milk9111/marblemaze/ecs/component"
	"github.com/milk9111/marblemaze/ecs/entity"
	"github.com/milk9111/marblemaze/levels"
	"github.com/milk9111/marblemaze/prefabs"
)

// boxLevel is a walled 16x12 room with tile placed on the spawn cell.
func boxLevel(tile string) string {
	rows := make([]string, 12)
	rows[0] = strings.Repeat("x", 16)
	rows[11] = strings.Repeat("x", 16)
	for i := 1; i < 11; i++ {
		rows[i] = "x" + strings.Repeat(" ", 14) + "x"
	}
	rows[1] = "x" + tile + rows[1][2:]
	return strings.Join(rows, "\n") + "\n"
}

func mapSource(files map[string]string) levels.Source {
	fsys := fstest.MapFS{}
	for name, text := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(text)}
	}
	return levels.FSSource{FS: fsys}
}

type stubTilt struct{ v common.Vec }

func (s stubTilt) Tilt() (common.Vec, bool) { return s.v, true }

func runUntil(t *testing.T, s *Session, limit int, cond func(component.GameState) bool) int {
	t.Helper()
	for tick := 1; tick <= limit; tick++ {
		if err := s.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
		if cond(s.State()) {
			return tick
		}
	}
	t.Fatalf("condition not met within %d ticks, state %+v", limit, s.State())
	return 0
}

func TestSessionStart(t *testing.T) {
	s := NewSession(Options{Source: mapSource(map[string]string{"level1.txt": boxLevel(" ")})})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	st := s.State()
	if st.Level != 1 || st.Score != 0 || st.Phase != component.PhaseIdle {
		t.Fatalf("state = %+v", st)
	}
	if _, ok := entity.Player(s.World()); !ok {
		t.Fatalf("player missing")
	}
	if err := s.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	// 16+16 top and bottom walls plus 10 rows of two side walls, plus the player.
	if got := s.Physics().BodyCount(); got != 53 {
		t.Fatalf("bodies = %d, want 53", got)
	}
}

func TestSessionVortexAtSpawn(t *testing.T) {
	s := NewSession(Options{Source: mapSource(map[string]string{"level1.txt": boxLevel("v")})})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	runUntil(t, s, 5, func(st component.GameState) bool { return st.Phase == component.PhaseTransitioning })
	if s.State().Score != 0 {
		t.Fatalf("score = %d, want 0", s.State().Score)
	}
	runUntil(t, s, 40, func(st component.GameState) bool { return st.Phase == component.PhaseIdle })

	p, ok := entity.Player(s.World())
	if !ok {
		t.Fatalf("player was not respawned")
	}
	tr, _ := ecs.Get(s.World(), p, component.TransformComponent.Kind())
	if tr.X != 96 || tr.Y != 672 {
		t.Fatalf("respawned at (%v, %v)", tr.X, tr.Y)
	}
	if n := ecs.Count(s.World(), component.SpinComponent.Kind()); n != 1 {
		t.Fatalf("vortex should remain, spinning entities = %d", n)
	}
}

func TestSessionFinishOnLastLevelReplays(t *testing.T) {
	s := NewSession(Options{Source: mapSource(map[string]string{"level1.txt": boxLevel("f")})})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	runUntil(t, s, 5, func(st component.GameState) bool { return st.Phase == component.PhaseTransitioning })
	if s.State().Level != 2 {
		t.Fatalf("level during transition = %d, want 2", s.State().Level)
	}
	runUntil(t, s, 40, func(st component.GameState) bool { return st.Phase == component.PhaseIdle })
	if s.State().Level != 1 {
		t.Fatalf("level = %d, want 1", s.State().Level)
	}
}

func TestSessionStartMalformed(t *testing.T) {
	s := NewSession(Options{Source: mapSource(map[string]string{"level1.txt": "x?x"})})
	if err := s.Start(); err == nil {
		t.Fatalf("expected error")
	}
	if n := len(ecs.Entities(s.World())); n != 0 {
		t.Fatalf("world should be untouched, has %d entities", n)
	}
}

func TestSessionTiltDrivesGravity(t *testing.T) {
	s := NewSession(Options{
		Source: mapSource(map[string]string{"level1.txt": boxLevel(" ")}),
		Tilt:   stubTilt{v: common.Vec{X: 0.1}},
	})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	want := common.Vec{Y: 0.1 * 50 * 150}
	if got := s.Physics().Gravity(); got.Sub(want).Len() > 1e-6 {
		t.Fatalf("gravity = %+v, want %+v", got, want)
	}
}

func TestSessionEmbeddedLevels(t *testing.T) {
	s := NewSession(Options{StartLevel: 3})
	if err := s.Start(); err != nil {
		t.Fatalf("start level 3: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if !s.State().Teleporters.Complete() {
		t.Fatalf("level 3 should pair its teleporters")
	}
}

// featureLevel is boxLevel with a star and two teleporters away from spawn.
func featureLevel() string {
	rows := strings.Split(strings.TrimSuffix(boxLevel(" "), "\n"), "\n")
	rows[4] = "x   s" + rows[4][5:]
	rows[7] = "x      t" + rows[7][8:]
	rows[9] = "x          t" + rows[9][12:]
	return strings.Join(rows, "\n") + "\n"
}

func TestSessionReloadWithBrokenPrefabKeepsLevel(t *testing.T) {
	oldDir := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = oldDir })

	s := NewSession(Options{Source: mapSource(map[string]string{"level1.txt": featureLevel()})})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	before := len(ecs.Entities(s.World()))
	pair := s.State().Teleporters
	if !pair.Complete() {
		t.Fatalf("teleporters not paired after start: %+v", pair)
	}

	broken := filepath.Join(prefabs.Dir, "star.yaml")
	if err := os.WriteFile(broken, []byte("physics_body: [oops\n"), 0o644); err != nil {
		t.Fatalf("write prefab: %v", err)
	}
	if err := s.Reload(); err == nil {
		t.Fatalf("reload with a broken star prefab should fail")
	}

	if got := len(ecs.Entities(s.World())); got != before {
		t.Fatalf("entities = %d after failed reload, want %d", got, before)
	}
	if got := s.State().Teleporters; got != pair {
		t.Fatalf("teleporters = %+v after failed reload, want %+v", got, pair)
	}
	if _, ok := entity.Player(s.World()); !ok {
		t.Fatalf("player missing after failed reload")
	}
	if err := s.Update(); err != nil {
		t.Fatalf("update after failed reload: %v", err)
	}

	if err := os.Remove(broken); err != nil {
		t.Fatalf("remove prefab: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("reload after fixing prefab: %v", err)
	}
	if got := len(ecs.Entities(s.World())); got != before {
		t.Fatalf("entities = %d after reload, want %d", got, before)
	}
}

func TestSessionShowsLevelFile(t *testing.T) {
	s := NewSession(Options{
		Source:     mapSource(map[string]string{"level1.txt": boxLevel(" "), "level2.txt": boxLevel(" ")}),
		StartLevel: 2,
	})
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tests := []struct {
		path string
		want bool
	}{
		{path: "levels/level2.txt", want: true},
		{path: "levels/level1.txt", want: false},
		{path: "levels/level20.txt", want: false},
		{path: "levels/readme.txt", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := s.ShowsLevelFile(tt.path); got != tt.want {
				t.Fatalf("ShowsLevelFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
