package tui

// History keeps recent commands for Up/Down recall. The line being typed
// when recall starts is kept as a draft and comes back after the newest entry.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, 0..len-1 = position in entries
	draft   string
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a submitted command and ends navigation. Consecutive
// duplicates are stored once.
func (h *History) Push(cmd string) {
	h.cursor = -1
	h.draft = ""
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev steps to an older entry. current is the input line as it stands; it
// is kept as the draft when navigation starts. Returns false if empty.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.draft = current
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps to a newer entry. Past the newest entry it returns the draft
// and ends navigation. Returns false when not navigating.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return h.draft, true
	}
	return h.entries[h.cursor], true
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}
