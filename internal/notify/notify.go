// Package notify delivers transient, fire-and-forget messages to shoppers.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
)

// Kind is a toast's visual style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Toast is one user-facing notification.
type Toast struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Success builds a success toast stamped with the current time.
func Success(title, description string) Toast {
	return Toast{Kind: KindSuccess, Title: title, Description: description, CreatedAt: time.Now().UTC()}
}

// Failure builds an error toast.
func Failure(title, description string) Toast {
	return Toast{Kind: KindError, Title: title, Description: description, CreatedAt: time.Now().UTC()}
}

// Notifier accepts toasts. Delivery never fails from the caller's view.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

func (f NotifierFunc) Notify(ctx context.Context, t Toast) { f(ctx, t) }

// Multi fans a toast out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, t Toast) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, t)
		}
	}
}

// LogNotifier records toasts in the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(l *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(ctx context.Context, t Toast) {
	l := logger.FromContext(ctx)
	if l == slog.Default() {
		l = n.logger
	}
	l.InfoContext(ctx, "toast",
		slog.String("kind", string(t.Kind)),
		slog.String("title", t.Title),
		slog.String("description", t.Description),
	)
}

// Inbox buffers the most recent toasts for one shopper until they are read.
// When full, the oldest toast is dropped.
type Inbox struct {
	mu    sync.Mutex
	buf   []Toast
	start int
	count int
}

// NewInbox returns an inbox holding at most size toasts. size < 1 is treated as 1.
func NewInbox(size int) *Inbox {
	if size < 1 {
		size = 1
	}
	return &Inbox{buf: make([]Toast, size)}
}

func (in *Inbox) Notify(_ context.Context, t Toast) {
	in.mu.Lock()
	defer in.mu.Unlock()

	end := (in.start + in.count) % len(in.buf)
	in.buf[end] = t
	if in.count == len(in.buf) {
		in.start = (in.start + 1) % len(in.buf)
		return
	}
	in.count++
}

// Drain returns pending toasts oldest first and empties the inbox.
func (in *Inbox) Drain() []Toast {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]Toast, in.count)
	for i := 0; i < in.count; i++ {
		out[i] = in.buf[(in.start+i)%len(in.buf)]
	}
	clear(in.buf)
	in.start, in.count = 0, 0
	return out
}

func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.count
}
