package assistant

import (
	"sync"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// Transcript is an append-only, concurrency-safe message log.
type Transcript struct {
	mu   sync.RWMutex
	msgs []domain.ConversationMessage
}

func (t *Transcript) Append(m domain.ConversationMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, m)
}

// Messages returns a copy of the log in insertion order.
func (t *Transcript) Messages() []domain.ConversationMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.ConversationMessage, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.msgs)
}

// Last returns the newest message, or the zero message when empty.
func (t *Transcript) Last() domain.ConversationMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.msgs) == 0 {
		return domain.ConversationMessage{}
	}
	return t.msgs[len(t.msgs)-1]
}
