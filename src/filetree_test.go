package src

import (
	"math/rand"
	"reflect"
	"testing"
)

func descriptors(paths ...string) []FileDescriptor {
	out := make([]FileDescriptor, len(paths))
	for i, p := range paths {
		out[i] = FileDescriptor{Path: p}
	}
	return out
}

func TestTreeOrderDirsBeforeFiles(t *testing.T) {
	root := BuildFileTree(descriptors("app/src/Main.java", "app/res/layout.xml", "README.md"))

	if got, want := root.OrderedNames(), []string{"app", "README.md"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root order = %v, want %v", got, want)
	}
	app := root.Children["app"]
	if got, want := app.OrderedNames(), []string{"res", "src"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("app order = %v, want %v", got, want)
	}
	if got, want := app.Children["res"].OrderedNames(), []string{"layout.xml"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("res order = %v, want %v", got, want)
	}
	if got, want := app.Children["src"].OrderedNames(), []string{"Main.java"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("src order = %v, want %v", got, want)
	}
}

func TestTreeInsertionOrderIrrelevant(t *testing.T) {
	paths := []string{"a/b/c.txt", "a/d.txt", "z.txt", "a/b/a.txt", "m/n/o/p.go", "m/x.go"}
	want := FlattenFileTree(BuildFileTree(descriptors(paths...)))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), paths...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := FlattenFileTree(BuildFileTree(descriptors(shuffled...)))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %v: rows = %+v, want %+v", shuffled, got, want)
		}
	}
}

func TestTreeDuplicatePathLastWins(t *testing.T) {
	root := BuildFileTree([]FileDescriptor{
		{Path: "a.txt", Description: "first"},
		{Path: "a.txt", Description: "second"},
	})

	leaf := root.Children["a.txt"]
	if leaf == nil || leaf.IsDir() {
		t.Fatalf("expected leaf at a.txt, got %+v", leaf)
	}
	if leaf.File.Description != "second" {
		t.Fatalf("leaf description = %q, want %q", leaf.File.Description, "second")
	}
}

func TestTreeDirectoryDisplacesLeaf(t *testing.T) {
	root := BuildFileTree(descriptors("a", "a/b.txt"))

	a := root.Children["a"]
	if a == nil || !a.IsDir() {
		t.Fatalf("expected directory at a, got %+v", a)
	}
	if leaf := a.Children["b.txt"]; leaf == nil || leaf.IsDir() {
		t.Fatalf("expected leaf at a/b.txt, got %+v", leaf)
	}
}

func TestTreeDirectoryWinsInAnyOrder(t *testing.T) {
	leafFirst := FlattenFileTree(BuildFileTree(descriptors("a", "a/b.txt")))
	leafLast := FlattenFileTree(BuildFileTree(descriptors("a/b.txt", "a")))

	want := []TreeRow{
		{Depth: 0, Name: "a", Path: "a", Dir: true},
		{Depth: 1, Name: "b.txt", Path: "a/b.txt"},
	}
	if !reflect.DeepEqual(leafFirst, want) {
		t.Fatalf("leaf-first rows = %+v, want %+v", leafFirst, want)
	}
	if !reflect.DeepEqual(leafLast, want) {
		t.Fatalf("leaf-last rows = %+v, want %+v", leafLast, want)
	}
}

func TestFlattenRowPaths(t *testing.T) {
	rows := FlattenFileTree(BuildFileTree(descriptors("src/app.go", "src/ui/view.go", "README.md")))

	want := []TreeRow{
		{Depth: 0, Name: "src", Path: "src", Dir: true},
		{Depth: 1, Name: "ui", Path: "src/ui", Dir: true},
		{Depth: 2, Name: "view.go", Path: "src/ui/view.go"},
		{Depth: 1, Name: "app.go", Path: "src/app.go"},
		{Depth: 0, Name: "README.md", Path: "README.md"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}

func TestRenderFileTree(t *testing.T) {
	out := RenderFileTree(BuildFileTree(descriptors("src/app.go", "README.md")))

	want := "└─ src/\n  └─ app.go\n└─ README.md\n"
	if out != want {
		t.Fatalf("render = %q, want %q", out, want)
	}
}
