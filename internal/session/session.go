// Package session keeps one storefront state per browser in memory.
package session

import (
	"sync"

	"github.com/Pronoysaha90/AuraAntique/internal/checkout"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
	"github.com/Pronoysaha90/AuraAntique/internal/store"
)

// Session is one shopper's state. Callers must hold the session lock for the
// whole of any operation that touches Store, Checkout or Inbox, so that a
// shopper's actions apply one at a time.
type Session struct {
	ID       string
	Store    *store.Store
	Checkout *checkout.Checkout
	Inbox    *notify.Inbox
	Notifier notify.Notifier

	mu sync.Mutex
}

func newSession(id string, inboxSize int, sink notify.Notifier) *Session {
	st := store.New()
	inbox := notify.NewInbox(inboxSize)
	n := notify.Multi{inbox, sink}
	return &Session{
		ID:       id,
		Store:    st,
		Checkout: checkout.New(st, n),
		Inbox:    inbox,
		Notifier: n,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }
