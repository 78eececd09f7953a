// Package controller orchestrates requests to the suggestion service and owns
// the state a front-end renders: the current message and suggestion, the
// history and analytics lists, the shared error text and loading flag.
//
// All state lives on a single goroutine. Operations run on the caller's
// goroutine and hand every state change to that owner, so different
// operations may interleave freely while each change stays atomic. There is
// no cancellation or staleness check between overlapping requests: the last
// response to commit wins.
package controller

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dohr-michael/emotai/internal/emoji"
	"github.com/dohr-michael/emotai/internal/events"
)

// Operation names used in logs and operation events.
const (
	OpSuggest   = "suggest"
	OpHistory   = "history"
	OpAnalytics = "analytics"
	OpFeedback  = "feedback"
)

// Service is the remote suggestion service.
type Service interface {
	Suggest(ctx context.Context, message string) (emoji.Suggestion, error)
	History(ctx context.Context) ([]emoji.HistoryEntry, error)
	Analytics(ctx context.Context) (emoji.Analytics, error)
	SubmitFeedback(ctx context.Context, fb emoji.Feedback) error
}

// owned is the data only the loop goroutine may touch.
type owned struct {
	state  State
	pacing Pacing
}

// Controller is the interaction controller.
type Controller struct {
	svc   Service
	bus   *events.Bus
	log   *slog.Logger
	pacer Pacer

	inbox    chan func(*owned)
	data     owned
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
	tasks    sync.WaitGroup
	once     sync.Once
}

// Option configures a Controller.
type Option func(*Controller)

// WithBus publishes state snapshots, acknowledgments and operation events on bus.
func WithBus(bus *events.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPacer replaces the timer used for display delays.
func WithPacer(p Pacer) Option {
	return func(c *Controller) { c.pacer = p }
}

// WithPacing sets the initial display delays.
func WithPacing(p Pacing) Option {
	return func(c *Controller) { c.data.pacing = p }
}

// New creates a Controller and starts its owning goroutine.
func New(svc Service, opts ...Option) *Controller {
	c := &Controller{
		svc:      svc,
		log:      slog.Default(),
		pacer:    TimerPacer{},
		inbox:    make(chan func(*owned)),
		data:     owned{state: initialState(), pacing: DefaultPacing()},
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	go c.loop()
	return c
}

func (c *Controller) loop() {
	defer close(c.loopDone)
	for {
		select {
		case fn := <-c.inbox:
			fn(&c.data)
		case <-c.ctx.Done():
			return
		}
	}
}

// Close stops the controller. Pending display delays and follow-on refreshes
// are cancelled and waited for. Close is idempotent.
func (c *Controller) Close() {
	c.once.Do(func() {
		c.cancel()
		<-c.loopDone
		c.tasks.Wait()
	})
}

// exec runs fn on the owning goroutine and waits for it. It returns false
// once the controller is closed.
func (c *Controller) exec(fn func(*owned)) bool {
	done := make(chan struct{})
	select {
	case c.inbox <- func(o *owned) { fn(o); close(done) }:
	case <-c.ctx.Done():
		return false
	}
	<-done
	return true
}

// update applies fn to the state, bumps the version and publishes the snapshot.
func (c *Controller) update(fn func(*State)) (State, bool) {
	var snap State
	ok := c.exec(func(o *owned) {
		fn(&o.state)
		snap = c.commit(o)
	})
	return snap, ok
}

// commit bumps the version and publishes a snapshot. Loop goroutine only.
func (c *Controller) commit(o *owned) State {
	o.state.Version++
	snap := o.state.clone()
	c.publish(StateChanged{State: snap})
	return snap
}

func (c *Controller) publish(p events.EventPayload) {
	if c.bus != nil {
		c.bus.Publish(events.NewEvent(events.SourceController, p))
	}
}

// Snapshot returns a copy of the current state. After Close it returns the
// final state.
func (c *Controller) Snapshot() State {
	var snap State
	if !c.exec(func(o *owned) { snap = o.state.clone() }) {
		<-c.loopDone
		return c.data.state.clone()
	}
	return snap
}

// Pacing returns the current display delays.
func (c *Controller) Pacing() Pacing {
	var p Pacing
	c.exec(func(o *owned) { p = o.pacing })
	return p
}

// SetPacing replaces the display delays for operations started afterwards.
func (c *Controller) SetPacing(p Pacing) {
	c.exec(func(o *owned) { o.pacing = p })
}

// SetMessage updates the message being typed.
func (c *Controller) SetMessage(message string) {
	c.update(func(s *State) { s.Message = message })
}

// SetFeedback updates the feedback text being typed.
func (c *Controller) SetFeedback(text string) {
	c.update(func(s *State) { s.Feedback = text })
}

// SetRating updates the feedback rating. Values outside 1..5 are rejected.
func (c *Controller) SetRating(rating int) error {
	if !emoji.ValidRating(rating) {
		return &ValidationError{Reason: msgInvalidRating}
	}
	c.update(func(s *State) { s.Rating = rating })
	return nil
}

// Reset clears the message, suggestion, lists, feedback form and error in a
// single step. The loading flag belongs to in-flight operations and is left
// alone; a response landing after Reset still commits.
func (c *Controller) Reset() {
	c.update(func(s *State) {
		loading := s.Loading
		*s = initialState()
		s.Loading = loading
	})
}

// Suggest requests a suggestion for message. On success the result is
// committed after the suggest display delay and a history refresh is started
// in the background; Suggest does not wait for it.
func (c *Controller) Suggest(ctx context.Context, message string) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	start := time.Now()

	if strings.TrimSpace(message) == "" {
		err := &ValidationError{Reason: msgEmptyMessage}
		c.update(func(s *State) {
			s.Message = message
			s.Error = err.Error()
		})
		c.trace(ctx, OpSuggest, events.PhaseFailed, err, start)
		return err
	}

	pacing, ok := c.begin(ctx, OpSuggest, func(s *State) {
		s.Message = message
		s.Result = nil
	})
	if !ok {
		return ErrClosed
	}

	res, err := c.svc.Suggest(ctx, message)
	if err != nil {
		return c.fail(ctx, OpSuggest, err, start)
	}

	if err := c.pacer.Wait(c.ctx, pacing.Suggest); err != nil {
		return ErrClosed
	}
	if _, ok := c.update(func(s *State) {
		s.Result = &res
		s.Loading = false
	}); !ok {
		return ErrClosed
	}
	c.trace(ctx, OpSuggest, events.PhaseSucceeded, nil, start)

	c.spawn(func(ctx context.Context) {
		ctx = events.ContextWithTrigger(ctx, events.TriggerFollowOn)
		if err := c.RefreshHistory(ctx); err != nil {
			c.log.Debug("follow-on history refresh failed", "error", err)
		}
	})
	return nil
}

// RefreshHistory replaces the history list with the service's current one.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	start := time.Now()

	pacing, ok := c.begin(ctx, OpHistory, nil)
	if !ok {
		return ErrClosed
	}

	list, err := c.svc.History(ctx)
	if err != nil {
		return c.fail(ctx, OpHistory, err, start)
	}
	if list == nil {
		list = []emoji.HistoryEntry{}
	}

	if err := c.pacer.Wait(c.ctx, pacing.Refresh); err != nil {
		return ErrClosed
	}
	if _, ok := c.update(func(s *State) {
		s.History = list
		s.Loading = false
	}); !ok {
		return ErrClosed
	}
	c.trace(ctx, OpHistory, events.PhaseSucceeded, nil, start)
	return nil
}

// RefreshAnalytics replaces the analytics list with the service's current one.
func (c *Controller) RefreshAnalytics(ctx context.Context) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	start := time.Now()

	pacing, ok := c.begin(ctx, OpAnalytics, nil)
	if !ok {
		return ErrClosed
	}

	a, err := c.svc.Analytics(ctx)
	if err != nil {
		return c.fail(ctx, OpAnalytics, err, start)
	}
	if a.Usage == nil {
		a.Usage = []emoji.AnalyticsEntry{}
	}

	if err := c.pacer.Wait(c.ctx, pacing.Refresh); err != nil {
		return ErrClosed
	}
	if _, ok := c.update(func(s *State) {
		s.Analytics = a.Usage
		s.Stats = a.Stats
		s.Loading = false
	}); !ok {
		return ErrClosed
	}
	c.trace(ctx, OpAnalytics, events.PhaseSucceeded, nil, start)
	return nil
}

// SubmitFeedback sends feedback for message. The caller checks that message
// is not empty. The outcome is reported as a feedback acknowledgment; the
// loading flag and the shared error text are never touched. On success the
// feedback text and rating return to their defaults.
func (c *Controller) SubmitFeedback(ctx context.Context, message, feedback string, rating int) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	start := time.Now()
	c.trace(ctx, OpFeedback, events.PhaseStarted, nil, start)

	err := c.svc.SubmitFeedback(ctx, emoji.Feedback{
		Message:  message,
		Feedback: feedback,
		Rating:   rating,
	})
	if err != nil {
		c.log.Warn("feedback submission failed", "error", err)
		c.publish(events.FeedbackAckPayload{OK: false, Text: msgFeedbackFail})
		c.trace(ctx, OpFeedback, events.PhaseFailed, err, start)
		return err
	}

	c.update(func(s *State) {
		s.Feedback = ""
		s.Rating = emoji.DefaultRating
	})
	c.publish(events.FeedbackAckPayload{OK: true, Text: msgFeedbackOK})
	c.trace(ctx, OpFeedback, events.PhaseSucceeded, nil, start)
	return nil
}

// begin clears the error, raises the loading flag, applies extra and returns
// the pacing in effect, all in one step.
func (c *Controller) begin(ctx context.Context, op string, extra func(*State)) (Pacing, bool) {
	var pacing Pacing
	ok := c.exec(func(o *owned) {
		o.state.Error = ""
		o.state.Loading = true
		if extra != nil {
			extra(&o.state)
		}
		c.commit(o)
		pacing = o.pacing
	})
	if !ok {
		return pacing, false
	}
	c.trace(ctx, op, events.PhaseStarted, nil, time.Now())
	return pacing, true
}

// fail records err as the error text and drops the loading flag at once.
func (c *Controller) fail(ctx context.Context, op string, err error, start time.Time) error {
	c.log.Warn("operation failed", "op", op, "trigger", events.TriggerFromContext(ctx), "error", err)
	c.update(func(s *State) {
		s.Error = err.Error()
		s.Loading = false
	})
	c.trace(ctx, op, events.PhaseFailed, err, start)
	return err
}

// spawn runs fn in the background with the controller's lifetime context.
// Nothing is started once the controller is closed.
func (c *Controller) spawn(fn func(context.Context)) {
	started := c.exec(func(*owned) { c.tasks.Add(1) })
	if !started {
		return
	}
	go func() {
		defer c.tasks.Done()
		fn(c.ctx)
	}()
}

func (c *Controller) trace(ctx context.Context, op string, phase events.OperationPhase, err error, start time.Time) {
	p := events.OperationPayload{
		Op:      op,
		Phase:   phase,
		Trigger: events.TriggerFromContext(ctx),
	}
	if phase != events.PhaseStarted {
		p.Duration = time.Since(start)
	}
	if err != nil {
		p.Error = err.Error()
	}
	c.log.Debug("operation", "op", op, "phase", phase, "trigger", p.Trigger, "duration", p.Duration)
	c.publish(p)
}
