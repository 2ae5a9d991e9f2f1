// Package hooks provides an explicit pre/post notification list for resource
// lifecycle events.
package hooks

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Event describes a lifecycle notification for a single resource.
type Event struct {
	Action       string // "delete"
	ResourceType string // "appointment"
	ResourceID   string
}

// Func is a single registered callback. Errors are logged, not propagated:
// a failing observer must not abort the mutation it observes.
type Func func(ctx context.Context, ev Event) error

// Notifier holds ordered pre- and post-action callback lists.
type Notifier struct {
	mu     sync.RWMutex
	pre    []Func
	post   []Func
	logger zerolog.Logger
}

func NewNotifier(logger zerolog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// RegisterPre appends a callback run before the action is applied.
func (n *Notifier) RegisterPre(fn Func) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pre = append(n.pre, fn)
}

// RegisterPost appends a callback run after the action is applied.
func (n *Notifier) RegisterPost(fn Func) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.post = append(n.post, fn)
}

// FirePre runs the pre-action callbacks in registration order.
func (n *Notifier) FirePre(ctx context.Context, ev Event) {
	n.fire(ctx, ev, n.snapshot(&n.pre), "pre")
}

// FirePost runs the post-action callbacks in registration order.
func (n *Notifier) FirePost(ctx context.Context, ev Event) {
	n.fire(ctx, ev, n.snapshot(&n.post), "post")
}

func (n *Notifier) snapshot(list *[]Func) []Func {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Func, len(*list))
	copy(out, *list)
	return out
}

func (n *Notifier) fire(ctx context.Context, ev Event, fns []Func, phase string) {
	for _, fn := range fns {
		if err := fn(ctx, ev); err != nil {
			n.logger.Error().
				Err(err).
				Str("phase", phase).
				Str("action", ev.Action).
				Str("resource_type", ev.ResourceType).
				Str("resource_id", ev.ResourceID).
				Msg("lifecycle hook failed")
		}
	}
}
