package log

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	TranslateInput  EventType = "TRANSLATE_INPUT"
	TranslateOutput EventType = "TRANSLATE_OUTPUT"
	LLMInput        EventType = "LLM_INPUT"
	LLMOutput       EventType = "LLM_OUTPUT"
	DebugToggle     EventType = "DEBUG_TOGGLE"
)

type Event struct {
	Time      time.Time   `json:"ts"`
	EventType EventType   `json:"eventtype"`
	Payload   interface{} `json:"p"`
}

// Collector fans events out to subscribers.
type Collector struct {
	mu   sync.RWMutex
	subs []chan Event
}

var Default = &Collector{}

// Publish sends an event to the default collector.
func Publish(eventType EventType, payload interface{}) {
	Default.Publish(Event{Time: time.Now(), EventType: eventType, Payload: payload})
}

// Publish delivers e to every subscriber without blocking; full subscribers miss it.
func (c *Collector) Publish(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a receive-only channel buffered to buf events.
func (c *Collector) Subscribe(buf int) <-chan Event {
	ch := make(chan Event, buf)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Sink JSON-encodes every event from c to w, optionally filtered by type.
func (c *Collector) Sink(w io.Writer, filters ...EventType) {
	want := map[EventType]bool{}
	for _, f := range filters {
		want[f] = true
	}
	events := c.Subscribe(100)
	go func() {
		enc := json.NewEncoder(w)
		for ev := range events {
			if len(want) > 0 && !want[ev.EventType] {
				continue
			}
			_ = enc.Encode(ev)
		}
	}()
}

// FileSink attaches a sink to the default collector.
func FileSink(w io.Writer, filters ...EventType) {
	Default.Sink(w, filters...)
}
