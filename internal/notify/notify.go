package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

type Notification struct {
	ID      int64
	Message string
	Kind    Kind
}

// Center is a process-wide transient-message queue. Each notification gets
// its own expiry timer at creation; later notifications never reset earlier
// timers, so several may be visible at once.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	nextID   int64
	visible  []Notification
	onChange func()
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// OnChange registers a callback fired after every append or removal.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Center) Success(message string) { c.Show(message, Success) }
func (c *Center) Error(message string)   { c.Show(message, Error) }

func (c *Center) Show(message string, kind Kind) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.visible = append(c.visible, Notification{ID: id, Message: message, Kind: kind})
	ttl := c.ttl
	fn := c.onChange
	c.mu.Unlock()

	time.AfterFunc(ttl, func() { c.Dismiss(id) })
	if fn != nil {
		fn()
	}
}

// Dismiss removes a notification early. Expiry goes through here too, so a
// dismissed id expiring later is a harmless no-op.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	kept := c.visible[:0]
	removed := false
	for _, n := range c.visible {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	c.visible = kept
	fn := c.onChange
	c.mu.Unlock()

	if removed && fn != nil {
		fn()
	}
}

// Visible returns the current notifications in insertion order.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.visible))
	copy(out, c.visible)
	return out
}
