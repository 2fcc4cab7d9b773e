package src

import "testing"

func TestApplyStreamEventDeltaThenComplete(t *testing.T) {
	p := NewProject("demo", AppPlan{})

	ApplyStreamEvent(p, StreamEvent{Kind: EventFileDelta, Path: "a.txt", Content: "hel"})
	if p.Files["a.txt"] != "hel" {
		t.Fatalf("after delta, files = %v", p.Files)
	}

	ApplyStreamEvent(p, StreamEvent{Kind: EventFileDelta, Path: "a.txt", Content: "hello wor"})
	if p.Files["a.txt"] != "hello wor" {
		t.Fatalf("delta must replace, files = %v", p.Files)
	}

	ApplyStreamEvent(p, StreamEvent{Kind: EventFileComplete, Path: "a.txt", Content: "hello world"})
	if p.Files["a.txt"] != "hello world" {
		t.Fatalf("after complete, files = %v", p.Files)
	}
}

func TestApplyStreamEventUnplannedPath(t *testing.T) {
	p := NewProject("demo", AppPlan{FileStructure: []FileDescriptor{{Path: "planned.txt"}}})

	ApplyStreamEvent(p, StreamEvent{Kind: EventFileComplete, Path: "surprise.txt", Content: "x"})
	if p.Files["surprise.txt"] != "x" {
		t.Fatalf("unplanned path not applied: %v", p.Files)
	}
}

func TestApplyStreamEventIgnoresStreamEnd(t *testing.T) {
	p := NewProject("demo", AppPlan{})
	ApplyStreamEvent(p, StreamEvent{Kind: EventStreamEnd})
	if len(p.Files) != 0 {
		t.Fatalf("StreamEnd mutated files: %v", p.Files)
	}
}

func TestTreeFilesMergesPlanAndExtras(t *testing.T) {
	p := NewProject("demo", AppPlan{FileStructure: []FileDescriptor{{Path: "b.txt"}, {Path: "a.txt"}}})
	p.Files["z.txt"] = "extra"
	p.Files["a.txt"] = "planned"

	got := p.TreeFiles()
	if len(got) != 3 {
		t.Fatalf("TreeFiles = %+v, want 3 entries", got)
	}
	// Plan order first, extras appended.
	if got[0].Path != "b.txt" || got[1].Path != "a.txt" || got[2].Path != "z.txt" {
		t.Fatalf("TreeFiles order = %+v", got)
	}
}
