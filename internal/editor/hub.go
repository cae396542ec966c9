package editor

import "sync"

// Update is pushed to preview subscribers after every commit.
type Update struct {
	ProjectID string `json:"projectId"`
	HTML      string `json:"html"`
	State     State  `json:"state"`
}

// hub fans out updates per project. Slow subscribers drop updates rather
// than block a commit; each update carries the full page, so only the
// latest one matters.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Update]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan Update]struct{})}
}

func (h *hub) subscribe(projectID string) (<-chan Update, func()) {
	ch := make(chan Update, 1)
	h.mu.Lock()
	if h.subs[projectID] == nil {
		h.subs[projectID] = make(map[chan Update]struct{})
	}
	h.subs[projectID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[projectID], ch)
			if len(h.subs[projectID]) == 0 {
				delete(h.subs, projectID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *hub) publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[u.ProjectID] {
		select {
		case ch <- u:
		default:
			// Replace the stale pending update with the new one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}
