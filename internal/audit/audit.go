// Package audit captures key console actions for the ops pipeline. Events
// are emitted from domain logic and fanned out by a Publisher; storage and
// transport stay behind the interface so tests can use the in-memory sink.
package audit

import (
	"context"
	"sync"
	"time"
)

// Action names are stable identifiers consumed downstream; do not rename.
const (
	ActionCreditsAdded        = "credits_added"
	ActionCreditsDebited      = "credits_debited"
	ActionDebitDenied         = "debit_denied"
	ActionWalletReset         = "wallet_reset"
	ActionVerificationCalled  = "verification_called"
	ActionVerificationSkipped = "verification_skipped"
	ActionResultsExported     = "results_exported"
	ActionResultsCleared      = "results_cleared"
)

// Event is emitted from domain logic to capture a key action. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Action    string    `json:"action"`
	Service   string    `json:"service,omitempty"`
	Category  string    `json:"category,omitempty"`
	Amount    int       `json:"amount,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Device    string    `json:"device,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers audit events. Emit must never block domain logic on
// sink failures; best effort is acceptable.
type Publisher interface {
	Emit(ctx context.Context, event Event)
	Close() error
}

// NopPublisher drops every event. Used when no sink is configured.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) {}
func (NopPublisher) Close() error                { return nil }

// MemoryPublisher retains events in memory, primarily for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.events = append(p.events, event)
}

func (p *MemoryPublisher) Close() error { return nil }

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
