package service

import "sync"

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notifier surfaces transient messages to the payer.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Notices collects notices in order so they can be returned in a response.
type Notices struct {
	mu   sync.Mutex
	list []Notice
}

func (n *Notices) Success(msg string) { n.add(NoticeSuccess, msg) }

func (n *Notices) Error(msg string) { n.add(NoticeError, msg) }

func (n *Notices) add(level NoticeLevel, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, Notice{Level: level, Message: msg})
}

func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notice, len(n.list))
	copy(out, n.list)
	return out
}
