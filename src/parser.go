package src

import "strings"

// Wire protocol emitted by the model for file content:
//
//	--FILE_START: <path>--
//	<content>
//	--FILE_END--
//
// repeated per file. Fragment boundaries are arbitrary and carry no
// relationship to the delimiters, so every marker may arrive split
// across deliveries.
const (
	fileStartMarker = "--FILE_START:"
	fileEndMarker   = "--FILE_END--"
	pathCloseMarker = "--"
)

type StreamEventKind int

const (
	// EventFileDelta carries the full content received so far for the open
	// file. It is a replacement, not an append: consumers overwrite.
	EventFileDelta StreamEventKind = iota
	// EventFileComplete carries the final trimmed content of one file.
	EventFileComplete
	// EventStreamEnd marks input exhaustion. Path and Content are empty.
	EventStreamEnd
)

// StreamEvent is the parser's output protocol.
type StreamEvent struct {
	Kind    StreamEventKind
	Path    string
	Content string
}

// StreamParser incrementally extracts named files from a fragment stream.
// It is a pure transformer: feed fragments in arrival order from a single
// goroutine, then call Finish exactly once when the producer is exhausted.
type StreamParser struct {
	buf      string
	path     string
	open     bool
	opened   int
	finished bool
}

func NewStreamParser() *StreamParser { return &StreamParser{} }

// Feed consumes one fragment and returns the events it resolves.
// Undecidable input (a header or terminator that may still be completed by
// a later fragment) is retained, never guessed at.
func (p *StreamParser) Feed(fragment string) []StreamEvent {
	if p.finished {
		return nil
	}
	p.buf += fragment

	var events []StreamEvent
	for {
		if !p.open {
			i := strings.Index(p.buf, fileStartMarker)
			if i < 0 {
				// No header yet. Keep everything: a marker may still arrive
				// split across the fragment boundary. Commentary before a
				// resolved header is dropped once the header is found.
				break
			}
			rest := p.buf[i+len(fileStartMarker):]
			j := strings.Index(rest, pathCloseMarker)
			if j < 0 {
				// Header open but path unterminated. Content bytes can look
				// like the terminator, so hold the raw tail until resolved.
				p.buf = p.buf[i:]
				break
			}
			p.path = strings.TrimSpace(rest[:j])
			p.buf = rest[j+len(pathCloseMarker):]
			p.open = true
			p.opened++
			continue
		}

		k := strings.Index(p.buf, fileEndMarker)
		if k < 0 {
			events = append(events, StreamEvent{
				Kind:    EventFileDelta,
				Path:    p.path,
				Content: strings.TrimSpace(withholdPartialTerminator(p.buf)),
			})
			break
		}
		events = append(events, StreamEvent{
			Kind:    EventFileComplete,
			Path:    p.path,
			Content: strings.TrimSpace(p.buf[:k]),
		})
		p.buf = p.buf[k+len(fileEndMarker):]
		p.path = ""
		p.open = false
		// Loop: the same fragment may hold further complete files.
	}
	return events
}

// Finish signals end of input. A file still open completes with whatever
// content accumulated; truncation and a merely omitted terminator are
// indistinguishable, so the lenient reading wins.
func (p *StreamParser) Finish() []StreamEvent {
	if p.finished {
		return nil
	}
	p.finished = true

	var events []StreamEvent
	if p.open {
		events = append(events, StreamEvent{
			Kind:    EventFileComplete,
			Path:    p.path,
			Content: strings.TrimSpace(p.buf),
		})
		p.open = false
		p.path = ""
		p.buf = ""
	}
	return append(events, StreamEvent{Kind: EventStreamEnd})
}

// FilesOpened reports how many file headers were ever resolved. Zero after
// Finish means the stream produced no file changes at all.
func (p *StreamParser) FilesOpened() int { return p.opened }

// withholdPartialTerminator trims a trailing prefix of the end marker so
// successive deltas stay monotonic; the held bytes remain buffered and are
// either confirmed as the terminator or re-emitted as content later.
func withholdPartialTerminator(s string) string {
	limit := len(fileEndMarker) - 1
	if limit > len(s) {
		limit = len(s)
	}
	for n := limit; n > 0; n-- {
		if strings.HasSuffix(s, fileEndMarker[:n]) {
			return s[:len(s)-n]
		}
	}
	return s
}
