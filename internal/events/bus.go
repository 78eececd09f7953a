// Package events provides an in-process event bus using Go channels.
package events

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Controller → front-ends
	EventStateChanged EventType = "controller.state"
	EventFeedbackAck  EventType = "controller.feedback.ack"

	// Operation lifecycle (tracing)
	EventOperation EventType = "controller.operation"

	// Service liveness
	EventServiceStatus EventType = "service.status"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceController EventSource = "controller"
	SourceTUI        EventSource = "tui"
	SourceCLI        EventSource = "cli"
	SourceHeartbeat  EventSource = "heartbeat"
)

// Event represents an event in the system.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Source    EventSource  `json:"source"`
	Payload   EventPayload `json:"payload"`
}

// eventIDCounter is used to generate sequential event IDs.
var eventIDCounter uint64

// NewEvent creates an event for payload with the current timestamp.
func NewEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        generateEventID(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   payload,
	}
}

func generateEventID() string {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq)
}

// Subscriber is a function that receives events.
type Subscriber func(Event)

// subscription delivers matching events in publish order through its own queue.
type subscription struct {
	id         int
	eventTypes []EventType
	queue      chan Event
}

// Bus is an in-process event bus. A single dispatcher fans events out to
// per-subscriber queues, so each subscriber sees events in publish order.
// Events are dropped, never blocked on, when a queue is full.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]*subscription
	nextID      int
	eventChan   chan Event
	bufferSize  int
	ringBuffer  *RingBuffer
	closed      bool
	done        chan struct{}
	wg          sync.WaitGroup
}

// NewBus creates a new event bus.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	b := &Bus{
		subscribers: make(map[int]*subscription),
		eventChan:   make(chan Event, bufferSize),
		bufferSize:  bufferSize,
		ringBuffer:  NewRingBuffer(bufferSize),
		done:        make(chan struct{}),
	}
	b.wg.Add(1)
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer b.wg.Done()
	for {
		select {
		case event := <-b.eventChan:
			b.ringBuffer.Add(event)
			b.notifySubscribers(event)
		case <-b.done:
			return
		}
	}
}

func (b *Bus) notifySubscribers(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, sub := range b.subscribers {
		if !matches(sub, event) {
			continue
		}
		select {
		case sub.queue <- event:
		default:
		}
	}
}

func matches(sub *subscription, event Event) bool {
	if len(sub.eventTypes) == 0 {
		return true
	}
	for _, t := range sub.eventTypes {
		if t == event.Type {
			return true
		}
	}
	return false
}

// Publish sends an event to the bus. It never blocks.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		return
	}

	select {
	case b.eventChan <- event:
	default:
	}
}

// Subscribe registers a handler for specific event types (all types when
// none are given). Handlers run on a goroutine owned by the subscription.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	sub, unsubscribe := b.add(b.bufferSize, eventTypes, true)
	if sub == nil {
		return unsubscribe
	}

	go func() {
		defer b.wg.Done()
		for e := range sub.queue {
			handler(e)
		}
	}()
	return unsubscribe
}

// SubscribeChan returns a channel that receives events. The channel is
// closed by the returned function or when the bus closes.
func (b *Bus) SubscribeChan(bufSize int, eventTypes ...EventType) (<-chan Event, func()) {
	sub, unsubscribe := b.add(bufSize, eventTypes, false)
	if sub == nil {
		ch := make(chan Event)
		close(ch)
		return ch, unsubscribe
	}
	return sub.queue, unsubscribe
}

// add registers a subscription. When worker is set the caller's goroutine is
// counted in b.wg before the lock is released, so Close waits for it.
func (b *Bus) add(bufSize int, eventTypes []EventType, worker bool) (*subscription, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, func() {}
	}
	if bufSize <= 0 {
		bufSize = 1
	}

	id := b.nextID
	b.nextID++
	sub := &subscription{
		id:         id,
		eventTypes: eventTypes,
		queue:      make(chan Event, bufSize),
	}
	b.subscribers[id] = sub
	if worker {
		b.wg.Add(1)
	}

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub.queue)
			}
		})
	}
}

// History returns recent events from the ring buffer.
func (b *Bus) History(limit int) []Event {
	return b.ringBuffer.Get(limit)
}

// Close shuts down the event bus and waits for handler goroutines to drain.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.done)
	for id, sub := range b.subscribers {
		delete(b.subscribers, id)
		close(sub.queue)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// RingBuffer is a circular buffer for storing recent events.
type RingBuffer struct {
	mu     sync.RWMutex
	events []Event
	size   int
	pos    int
	count  int
}

// NewRingBuffer creates a new ring buffer.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		events: make([]Event, size),
		size:   size,
	}
}

func (r *RingBuffer) Add(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.pos] = event
	r.pos = (r.pos + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

func (r *RingBuffer) Get(n int) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}

	result := make([]Event, n)
	start := (r.pos - n + r.size) % r.size
	for i := 0; i < n; i++ {
		result[i] = r.events[(start+i)%r.size]
	}
	return result
}

func (r *RingBuffer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	r.count = 0
}
