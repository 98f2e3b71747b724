package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/epicquest/engine/balance"
)

// writeLua writes src to name inside dir and returns the path.
func writeLua(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestLoad_ClassicMatchesDefault(t *testing.T) {
	b, err := Load("../balances/classic.lua")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := balance.Default()
	if b.StartXPToNext != want.StartXPToNext || b.LevelFactor != want.LevelFactor || b.PoolSize != want.PoolSize {
		t.Errorf("classic balance differs from default: %+v", b)
	}
	if b.Hunt != want.Hunt || b.Collect != want.Collect {
		t.Errorf("templates differ: hunt=%+v collect=%+v", b.Hunt, b.Collect)
	}
	if strings.Join(b.Items, ",") != strings.Join(want.Items, ",") {
		t.Errorf("items = %v", b.Items)
	}
}

func TestLoad_Hardcore(t *testing.T) {
	b, err := Load("../balances/hardcore.lua")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.StartGold != 0 || b.LevelFactor != 2 || b.FightXP != 10 || b.PoolSize != 5 {
		t.Errorf("overrides not applied: %+v", b)
	}
	// Unset fields keep their defaults.
	if b.StartXPToNext != 100 || b.Hunt.XPBase != 30 {
		t.Errorf("defaults lost: %+v", b)
	}
	if b.Hunt.MinCount != 3 || b.Hunt.MaxCount != 6 {
		t.Errorf("hunt range = %d..%d", b.Hunt.MinCount, b.Hunt.MaxCount)
	}
	if got := b.Enemies[len(b.Enemies)-1]; got != "wraith" {
		t.Errorf("last enemy = %q, want wraith", got)
	}
	if !balance.IsItem(b, "amulet") {
		t.Error("amulet should be an item")
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "zz_extra.lua", `Balance { pool_size = 4 }`)
	writeLua(t, dir, "balance.lua", `Balance { pool_size = 6, fight = { gold = 1 } }`)
	writeLua(t, dir, "notes.txt", `not lua`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// balance.lua runs first, so the later file wins.
	if b.PoolSize != 4 {
		t.Errorf("PoolSize = %d, want 4", b.PoolSize)
	}
	if b.FightGold != 1 {
		t.Errorf("FightGold = %d, want 1", b.FightGold)
	}
}

func TestLoad_EmptyDirectory_Fails(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Fatalf("expected 'no .lua files' error, got %v", err)
	}
}

func TestLoad_MissingFile_Fails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.lua"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	path := writeLua(t, t.TempDir(), "bad.lua", `Balance { pool_size = `)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_TypeErrors_Collected(t *testing.T) {
	path := writeLua(t, t.TempDir(), "types.lua", `
Balance {
  pool_size = "three",
  level_factor = {},
  fight = { xp = 2.5 },
  items = { "potion", 7 },
}`)
	_, err := Load(path)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Balance.level_factor", "Balance.fight.xp", "Balance.pool_size", "Balance.items[2]"}
	if len(ve.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), ve.Errors)
	}
	for i, w := range want {
		if !strings.HasPrefix(ve.Errors[i], w) {
			t.Errorf("error %d = %q, want prefix %q", i, ve.Errors[i], w)
		}
	}
}

func TestLoad_InvalidBalance_Fails(t *testing.T) {
	path := writeLua(t, t.TempDir(), "bad.lua", `
Balance { pool_size = 0, hunt = { min = 5, max = 2 } }
Item "goblin"`)
	_, err := Load(path)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msg := err.Error()
	for _, w := range []string{"PoolSize", "Hunt.MaxCount", `"goblin" is both an enemy and an item`} {
		if !strings.Contains(msg, w) {
			t.Errorf("error %q missing %q", msg, w)
		}
	}
}

func TestCheckBalance_Warnings(t *testing.T) {
	b := balance.Default()
	b.LevelFactor = 1
	b.FightXP = 0
	b.Items = append(b.Items, "magic ring")

	ve := checkBalance(b)
	if len(ve.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ve.Errors)
	}
	if len(ve.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %v", ve.Warnings)
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	for _, src := range []string{
		`os.execute("echo pwned")`,
		`io.open("/etc/passwd")`,
		`dofile("x.lua")`,
		`math.randomseed(1)`,
		`math.random(6)`,
	} {
		if err := L.DoString(src); err == nil {
			t.Errorf("expected sandbox to block %s", src)
		}
	}
}

func TestAPI_Scale(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Balance { fight = { xp = scale(10, 5, 2) } }`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	b, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if b.FightXP != 20 {
		t.Errorf("FightXP = %d, want 20", b.FightXP)
	}
}

func TestLoad_FileOrdering(t *testing.T) {
	files := sortedLuaFiles([]string{"rooms.lua", "balance.lua", "items.lua", "enemies.lua"})
	want := []string{"balance.lua", "enemies.lua", "items.lua", "rooms.lua"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", files, want)
	}
}
