package src

// ApplyStreamEvent folds one parser event into the project's file map. This
// is the only mutation path while a stream is in flight, so aborting simply
// means stopping the event flow: whatever was applied stays.
func ApplyStreamEvent(p *Project, ev StreamEvent) {
	switch ev.Kind {
	case EventFileDelta, EventFileComplete:
		if ev.Path == "" {
			return
		}
		if p.Files == nil {
			p.Files = map[string]string{}
		}
		p.Files[ev.Path] = ev.Content
	case EventStreamEnd:
		// Terminal marker only; the orchestrator decides what happens next.
	}
}
