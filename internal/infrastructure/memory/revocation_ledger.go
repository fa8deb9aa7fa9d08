package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
)

type ledgerEntry struct {
	userID    string
	reason    domain.RevocationReason
	expiresAt time.Time
}

// RevocationLedger is the in-memory fallback for local development and
// tests. Entries expire lazily on read plus via a periodic sweep, mirroring
// the storage-native TTL the Redis ledger gets for free.
type RevocationLedger struct {
	mu      sync.Mutex
	entries map[string]ledgerEntry         // token -> entry
	byUser  map[string]map[string]struct{} // userID -> set of tokens

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

func NewRevocationLedger() *RevocationLedger {
	l := &RevocationLedger{
		entries: make(map[string]ledgerEntry),
		byUser:  make(map[string]map[string]struct{}),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.sweep(time.Minute)
	return l
}

func (l *RevocationLedger) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *RevocationLedger) Revoke(_ context.Context, token, userID string, reason domain.RevocationReason, expiresAt time.Time) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !expiresAt.After(l.now()) {
		return nil
	}
	if _, exists := l.entries[token]; exists {
		// already revoked
		return nil
	}

	l.entries[token] = ledgerEntry{userID: userID, reason: reason, expiresAt: expiresAt}
	set, ok := l.byUser[userID]
	if !ok {
		set = make(map[string]struct{})
		l.byUser[userID] = set
	}
	set[token] = struct{}{}
	return nil
}

func (l *RevocationLedger) IsRevoked(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[token]
	if !ok {
		return false, nil
	}
	if !e.expiresAt.After(l.now()) {
		l.remove(token, e.userID)
		return false, nil
	}
	return true, nil
}

func (l *RevocationLedger) RevokeAll(_ context.Context, userID string, _ domain.RevocationReason) (int, error) {
	if userID == "" {
		return 0, domain.ErrMissingField("user_id")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	n := 0
	for token := range l.byUser[userID] {
		e, ok := l.entries[token]
		if !ok {
			continue
		}
		if e.expiresAt.After(now) {
			n++
		}
		delete(l.entries, token)
	}
	delete(l.byUser, userID)
	return n, nil
}

// remove assumes l.mu is held.
func (l *RevocationLedger) remove(token, userID string) {
	delete(l.entries, token)
	if set, ok := l.byUser[userID]; ok {
		delete(set, token)
		if len(set) == 0 {
			delete(l.byUser, userID)
		}
	}
}

func (l *RevocationLedger) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-t.C:
			l.mu.Lock()
			now := l.now()
			for token, e := range l.entries {
				if !e.expiresAt.After(now) {
					l.remove(token, e.userID)
				}
			}
			l.mu.Unlock()
		}
	}
}
