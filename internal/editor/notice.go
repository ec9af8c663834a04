package editor

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the alert style of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is a transient user-facing message.
type Notice struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Created time.Time `json:"created"`
}

type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Notifiers fans a notice out to each notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(n Notice) {
	for _, notifier := range ns {
		notifier.Notify(n)
	}
}

// NoticeBoard holds the notices currently shown. Each one is dismissed
// by a timer after the board's lifetime; nothing depends on the timer
// having fired.
type NoticeBoard struct {
	mu       sync.Mutex
	notices  []Notice
	lifetime time.Duration
	timers   map[string]*time.Timer
}

func NewNoticeBoard(lifetime time.Duration) *NoticeBoard {
	return &NoticeBoard{
		lifetime: lifetime,
		timers:   make(map[string]*time.Timer),
	}
}

func (b *NoticeBoard) Notify(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, n)
	if b.lifetime > 0 {
		id := n.ID
		b.timers[id] = time.AfterFunc(b.lifetime, func() { b.Dismiss(id) })
	}
}

// Dismiss removes a notice; unknown ids are ignored.
func (b *NoticeBoard) Dismiss(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
	b.notices = slices.DeleteFunc(b.notices, func(n Notice) bool { return n.ID == id })
}

// Active returns the notices not yet dismissed, oldest first.
func (b *NoticeBoard) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.notices)
}

func newNotice(level Level, msg string, now time.Time) Notice {
	return Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		Created: now,
	}
}
