// Package notice holds the transient status banner shown on each page.
package notice

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 4 * time.Second

// Kind distinguishes success banners from error banners.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Message is what the banner currently shows. The zero value means no banner.
type Message struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Empty reports whether there is nothing to show.
func (m Message) Empty() bool { return m.Text == "" }

// Timer is the part of *time.Timer the banner needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Banner shows one message at a time and clears it after a fixed delay.
// A new message replaces the old one and restarts the delay.
type Banner struct {
	mu        sync.Mutex
	ttl       time.Duration
	afterFunc AfterFunc
	current   Message
	timer     Timer
	seq       uint64
}

// New returns a banner whose messages expire after ttl.
func New(ttl time.Duration) *Banner {
	return NewWithTimer(ttl, stdAfterFunc)
}

// NewWithTimer is New with an injectable scheduler. A nil afterFunc uses
// time.AfterFunc.
func NewWithTimer(ttl time.Duration, afterFunc AfterFunc) *Banner {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if afterFunc == nil {
		afterFunc = stdAfterFunc
	}
	return &Banner{ttl: ttl, afterFunc: afterFunc}
}

// Success shows a success message.
func (b *Banner) Success(text string) { b.Show(Success, text) }

// Error shows an error message.
func (b *Banner) Error(text string) { b.Show(Error, text) }

// Show replaces the current message and schedules its removal.
func (b *Banner) Show(kind Kind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.seq++
	seq := b.seq
	b.current = Message{Text: text, Kind: kind}
	b.timer = b.afterFunc(b.ttl, func() { b.expire(seq) })
}

// Current returns the visible message.
func (b *Banner) Current() Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Clear removes the message immediately.
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.current = Message{}
}

// expire clears the message only if it is still the one that scheduled it.
func (b *Banner) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		return
	}
	b.current = Message{}
	b.timer = nil
}
