package outputs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Sender delivers one output action to its target. Implementations return
// an error for delivery failures; the dispatcher owns the retry budget.
type Sender interface {
	Send(ctx context.Context, action OutputAction, result json.RawMessage) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, action OutputAction, result json.RawMessage) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, action OutputAction, result json.RawMessage) error {
	return f(ctx, action, result)
}

// SenderRegistry maps action types to delivery strategies. New targets are
// added by registration at startup without touching the dispatcher.
type SenderRegistry struct {
	mu      sync.RWMutex
	senders map[ActionType]Sender
}

// NewSenderRegistry creates an empty sender registry.
func NewSenderRegistry() *SenderRegistry {
	return &SenderRegistry{
		senders: make(map[ActionType]Sender),
	}
}

// Register binds a sender for an action type, replacing any previous binding.
func (r *SenderRegistry) Register(t ActionType, sender Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[t] = sender
}

// Send dispatches the action through the sender registered for its type.
func (r *SenderRegistry) Send(ctx context.Context, action OutputAction, result json.RawMessage) error {
	r.mu.RLock()
	sender, ok := r.senders[action.Type]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSender, action.Type)
	}

	return sender.Send(ctx, action, result)
}
