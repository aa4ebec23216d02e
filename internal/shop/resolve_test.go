package shop

import (
	"os"
	"path/filepath"
	"testing"
)

func testDirs(t *testing.T) ([]SourceDirectory, string) {
	t.Helper()
	root := t.TempDir()
	gamesDir := filepath.Join(root, "games")
	if err := os.MkdirAll(filepath.Join(gamesDir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gamesDir, "game.nsp"), []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gamesDir, "subdir", "dlc.nsz"), []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A file outside the published tree that traversal must never reach.
	if err := os.WriteFile(filepath.Join(root, "secret.nsp"), []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	return BuildAliases([]string{gamesDir}), gamesDir
}

func TestResolveFile(t *testing.T) {
	dirs, gamesDir := testDirs(t)

	resolved, ok := Resolve("games/game.nsp", dirs)
	if !ok {
		t.Fatal("expected resolve to succeed")
	}
	if resolved.AbsolutePath != filepath.Join(gamesDir, "game.nsp") {
		t.Fatalf("unexpected path %q", resolved.AbsolutePath)
	}
	if resolved.Size != 10 {
		t.Fatalf("expected size 10, got %d", resolved.Size)
	}
}

func TestResolveNested(t *testing.T) {
	dirs, _ := testDirs(t)
	if _, ok := Resolve("games/subdir/dlc.nsz", dirs); !ok {
		t.Fatal("expected nested resolve to succeed")
	}
}

func TestResolveCollapsesSlashes(t *testing.T) {
	dirs, _ := testDirs(t)
	if _, ok := Resolve("games//subdir///dlc.nsz/", dirs); !ok {
		t.Fatal("expected resolve with doubled slashes to succeed")
	}
}

func TestResolveRejections(t *testing.T) {
	dirs, _ := testDirs(t)

	cases := []struct {
		name string
		path string
	}{
		{"traversal", "games/../../etc/passwd"},
		{"parent only", "games/.."},
		{"dot segment", "games/./game.nsp"},
		{"whitespace segment", "games/ /game.nsp"},
		{"unknown alias", "other/game.nsp"},
		{"missing file", "games/nope.nsp"},
		{"directory not file", "games/subdir"},
		{"empty", ""},
		{"slashes only", "///"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Resolve(tc.path, dirs); ok {
				t.Fatalf("expected %q to fail resolution", tc.path)
			}
		})
	}
}

func TestResolvePicksMatchingAlias(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	dirA := filepath.Join(rootA, "games")
	dirB := filepath.Join(rootB, "games")
	for _, d := range []string{dirA, dirB} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dirB, "only-in-b.nsp"), []byte("xx"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs := BuildAliases([]string{dirA, dirB})

	if _, ok := Resolve("games/only-in-b.nsp", dirs); ok {
		t.Fatal("file should not resolve under the first alias")
	}
	resolved, ok := Resolve("games-2/only-in-b.nsp", dirs)
	if !ok {
		t.Fatal("expected resolve under games-2")
	}
	if resolved.AbsolutePath != filepath.Join(dirB, "only-in-b.nsp") {
		t.Fatalf("unexpected path %q", resolved.AbsolutePath)
	}
}
