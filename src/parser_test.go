package src

import (
	"reflect"
	"testing"
)

// collect feeds fragments through a fresh parser and returns the ordered
// list of FileComplete events plus the parser itself.
func collect(fragments ...string) ([]StreamEvent, *StreamParser) {
	p := NewStreamParser()
	var completes []StreamEvent
	keep := func(events []StreamEvent) {
		for _, ev := range events {
			if ev.Kind == EventFileComplete {
				completes = append(completes, ev)
			}
		}
	}
	for _, frag := range fragments {
		keep(p.Feed(frag))
	}
	keep(p.Finish())
	return completes, p
}

func TestParseSplitAcrossMarker(t *testing.T) {
	completes, _ := collect("--FILE_ST", "ART: a.txt--\nhel", "lo\n--FILE_END--")

	want := []StreamEvent{{Kind: EventFileComplete, Path: "a.txt", Content: "hello"}}
	if !reflect.DeepEqual(completes, want) {
		t.Fatalf("completes = %+v, want %+v", completes, want)
	}
}

func TestParseRechunkingInvariance(t *testing.T) {
	stream := "preamble text\n--FILE_START: src/main.go--\npackage main\n--FILE_END--\n" +
		"--FILE_START: go.mod--\nmodule demo\n--FILE_END--\ntrailing"

	want, _ := collect(stream)
	if len(want) != 2 {
		t.Fatalf("expected 2 files from the unsplit stream, got %d", len(want))
	}
	for cut := 0; cut <= len(stream); cut++ {
		got, _ := collect(stream[:cut], stream[cut:])
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("split at %d: completes = %+v, want %+v", cut, got, want)
		}
	}
}

func TestParseMultipleFilesInOneFragment(t *testing.T) {
	completes, p := collect("--FILE_START: a--\n1\n--FILE_END----FILE_START: b--\n2\n--FILE_END--")

	want := []StreamEvent{
		{Kind: EventFileComplete, Path: "a", Content: "1"},
		{Kind: EventFileComplete, Path: "b", Content: "2"},
	}
	if !reflect.DeepEqual(completes, want) {
		t.Fatalf("completes = %+v, want %+v", completes, want)
	}
	if p.FilesOpened() != 2 {
		t.Fatalf("FilesOpened = %d, want 2", p.FilesOpened())
	}
}

func TestParseCommentaryDiscarded(t *testing.T) {
	completes, _ := collect("Sure! Here is the file you asked for:\n\n", "--FILE_START: x--\nbody\n--FILE_END--")

	want := []StreamEvent{{Kind: EventFileComplete, Path: "x", Content: "body"}}
	if !reflect.DeepEqual(completes, want) {
		t.Fatalf("completes = %+v, want %+v", completes, want)
	}
}

func TestParseTruncatedFileCompletesOnFinish(t *testing.T) {
	p := NewStreamParser()
	p.Feed("--FILE_START: X--\npartial conten")

	events := p.Finish()
	want := []StreamEvent{
		{Kind: EventFileComplete, Path: "X", Content: "partial conten"},
		{Kind: EventStreamEnd},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("Finish = %+v, want %+v", events, want)
	}
}

func TestParseTruncationNeverCompletesEarly(t *testing.T) {
	p := NewStreamParser()
	for _, ev := range p.Feed("--FILE_START: X--\npartial conten") {
		if ev.Kind == EventFileComplete {
			t.Fatalf("file completed before end of stream: %+v", ev)
		}
	}
}

func TestParseDeltaWithholdsPartialTerminator(t *testing.T) {
	p := NewStreamParser()

	events := p.Feed("--FILE_START: a.txt--\nhello\n--FILE_EN")
	if len(events) != 1 || events[0].Kind != EventFileDelta {
		t.Fatalf("expected one delta, got %+v", events)
	}
	if events[0].Content != "hello" {
		t.Fatalf("delta content = %q, want %q", events[0].Content, "hello")
	}

	events = p.Feed("D--")
	want := []StreamEvent{{Kind: EventFileComplete, Path: "a.txt", Content: "hello"}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
}

func TestParseDeltasAreFullReplacements(t *testing.T) {
	p := NewStreamParser()
	p.Feed("--FILE_START: a--\nfirst")

	events := p.Feed(" second")
	if len(events) != 1 || events[0].Content != "first second" {
		t.Fatalf("expected cumulative delta %q, got %+v", "first second", events)
	}
}

func TestParseUnterminatedHeaderOpensNothing(t *testing.T) {
	_, p := collect("--FILE_START: never-closed")
	if p.FilesOpened() != 0 {
		t.Fatalf("FilesOpened = %d, want 0", p.FilesOpened())
	}
}

func TestParseEmptyStream(t *testing.T) {
	p := NewStreamParser()
	events := p.Finish()

	want := []StreamEvent{{Kind: EventStreamEnd}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("Finish = %+v, want %+v", events, want)
	}
	if p.FilesOpened() != 0 {
		t.Fatalf("FilesOpened = %d, want 0", p.FilesOpened())
	}
	if got := p.Finish(); got != nil {
		t.Fatalf("second Finish = %+v, want nil", got)
	}
}
