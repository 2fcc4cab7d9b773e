package src

import (
	"archive/zip"
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"
)

func buildZip(t *testing.T, entries map[string]string, dirs ...string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, dir := range dirs {
		if _, err := zw.Create(dir); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range entries {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestArchiveRoundTrip(t *testing.T) {
	p := NewProject("a demo", AppPlan{Name: "Demo", FileStructure: []FileDescriptor{{Path: "src/a.txt"}}})
	p.Files["src/a.txt"] = "hello"
	p.Files["README.md"] = "# Demo"
	p.Review.Crashes = []Suggestion{{ID: "c1", Description: "boom"}}
	p.CreatedAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteArchive(&buf, p); err != nil {
		t.Fatalf("WriteArchive returned error: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	arc, err := ReadArchive(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("ReadArchive returned error: %v", err)
	}
	if arc.Manifest == nil {
		t.Fatalf("expected manifest")
	}
	if arc.Manifest.Prompt != "a demo" || arc.Manifest.Plan.Name != "Demo" {
		t.Fatalf("manifest = %+v", arc.Manifest)
	}
	if !arc.Manifest.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", arc.Manifest.CreatedAt, p.CreatedAt)
	}
	if !reflect.DeepEqual(arc.Files, p.Files) {
		t.Fatalf("files = %v, want %v", arc.Files, p.Files)
	}
	if got := decodeReview(arc.Manifest.Review); len(got.Crashes) != 1 || got.Crashes[0].Description != "boom" {
		t.Fatalf("review = %+v", got)
	}
}

func TestArchiveShallowestManifestWins(t *testing.T) {
	r := buildZip(t, map[string]string{
		"wrapper/project.json":        `{"prompt":"outer","plan":{"name":"Outer"}}`,
		"wrapper/src/a.txt":           "hello",
		"wrapper/nested/project.json": `{"prompt":"inner"}`,
		"wrapper/nested/b.txt":        "nested file",
	})

	arc, err := ReadArchive(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("ReadArchive returned error: %v", err)
	}
	if arc.Manifest == nil || arc.Manifest.Prompt != "outer" {
		t.Fatalf("manifest = %+v, want the shallowest", arc.Manifest)
	}

	// Prefix stripped relative to the winning manifest's directory; the
	// deeper project.json is just a file in the tree.
	want := map[string]string{
		"src/a.txt":           "hello",
		"nested/project.json": `{"prompt":"inner"}`,
		"nested/b.txt":        "nested file",
	}
	if !reflect.DeepEqual(arc.Files, want) {
		t.Fatalf("files = %v, want %v", arc.Files, want)
	}
}

func TestArchiveWithoutManifestImportsRawFiles(t *testing.T) {
	r := buildZip(t, map[string]string{
		"a.txt":           "one",
		"sub/b.txt":       "two",
		"__MACOSX/a.txt":  "resource fork junk",
		"sub/__MACOSX/c":  "more junk",
	}, "emptydir/")

	arc, err := ReadArchive(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("ReadArchive returned error: %v", err)
	}
	if arc.Manifest != nil {
		t.Fatalf("expected nil manifest, got %+v", arc.Manifest)
	}
	want := map[string]string{"a.txt": "one", "sub/b.txt": "two"}
	if !reflect.DeepEqual(arc.Files, want) {
		t.Fatalf("files = %v, want %v", arc.Files, want)
	}
}

func TestArchiveUnreadableManifestFails(t *testing.T) {
	r := buildZip(t, map[string]string{
		"project.json": "{not json",
		"a.txt":        "one",
	})

	if _, err := ReadArchive(r, int64(r.Len())); err == nil {
		t.Fatalf("expected unreadable manifest to fail the import")
	}
}

func TestArchiveWithOnlyManifestFails(t *testing.T) {
	r := buildZip(t, map[string]string{
		"project.json": `{"prompt":"empty"}`,
	})

	if _, err := ReadArchive(r, int64(r.Len())); !errors.Is(err, ErrNoProjectFiles) {
		t.Fatalf("err = %v, want ErrNoProjectFiles", err)
	}
}

func TestArchiveEmptyFails(t *testing.T) {
	r := buildZip(t, nil)

	if _, err := ReadArchive(r, int64(r.Len())); !errors.Is(err, ErrEmptyArchive) {
		t.Fatalf("err = %v, want ErrEmptyArchive", err)
	}
}
