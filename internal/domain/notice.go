package domain

import "sync"

// NoticeLevel mirrors the warning/error split shown to users.
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing diagnostic reported beside results instead of an
// error return.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Source  string      `json:"source"`
	Message string      `json:"message"`
}

// Reporter receives notices from extractors.
type Reporter interface {
	Report(n Notice)
}

// Notices collects notices from concurrent extractors.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

func (n *Notices) Report(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notice)
}

// List returns a copy of the collected notices.
func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}

// Discard drops every notice.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Notice) {}
