package tui

// history keeps submitted commands for Up/Down recall. While navigating it
// remembers the line being typed so Down past the newest entry restores it.
type history struct {
	entries []string
	limit   int
	cursor  int // -1 when not navigating
	draft   string
}

func newHistory(limit int) *history {
	return &history{limit: limit, cursor: -1}
}

// push records a command. Consecutive duplicates are kept once.
func (h *history) push(cmd string) {
	h.cursor = -1
	h.draft = ""
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
}

// prev steps to an older entry. current is the input line, saved as the
// draft when navigation starts.
func (h *history) prev(current string) (string, bool) {
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

// next steps to a newer entry, returning the draft once past the newest.
func (h *history) next() string {
	if h.cursor == -1 {
		return h.draft
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return h.draft
	}
	return h.entries[h.cursor]
}
