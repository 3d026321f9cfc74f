// Package contact implements the contact form: its submission state machine
// and the senders that deliver a message.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned while a submission is in flight or its outcome
	// is still on display.
	ErrBusy = errors.New("contact form is busy")
	// ErrIncomplete is returned when a required field is blank.
	ErrIncomplete = errors.New("contact form is incomplete")
	// ErrUnknownField is returned by Set for a field outside the four known ones.
	ErrUnknownField = errors.New("unknown contact field")
	// ErrSubmissionFailed wraps the sender error of a failed delivery.
	ErrSubmissionFailed = errors.New("contact submission failed")
)

const (
	DefaultSimulatedLatency = 2 * time.Second
	DefaultDisplayWindow    = 3 * time.Second
)

// State is a step of the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Field names one of the four form inputs.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldSubject
	FieldMessage
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldSubject:
		return "subject"
	case FieldMessage:
		return "message"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Message is what a visitor sends.
type Message struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Get returns the value of field.
func (m Message) Get(field Field) string {
	switch field {
	case FieldName:
		return m.Name
	case FieldEmail:
		return m.Email
	case FieldSubject:
		return m.Subject
	case FieldMessage:
		return m.Message
	}
	return ""
}

// Missing returns the required fields that are blank.
func (m Message) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if strings.TrimSpace(m.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Receipt identifies a delivered message.
type Receipt struct {
	ID string
	At time.Time
}

// Option configures a Form.
type Option func(*Form)

// WithDisplayWindow sets how long the outcome stays on display before the
// form returns to idle.
func WithDisplayWindow(d time.Duration) Option {
	return func(f *Form) {
		f.displayWindow = d
	}
}

// WithOnChange registers an observer that receives every state transition.
// It is called without the form lock held.
func WithOnChange(fn func(State)) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}

// Form is the contact form of one view. It is safe for concurrent use.
type Form struct {
	sender        Sender
	displayWindow time.Duration
	onChange      func(State)
	now           func() time.Time

	mu     sync.Mutex
	state  State
	values Message
	reset  *time.Timer
	closed bool
}

// NewForm returns an idle form that delivers through sender.
func NewForm(sender Sender, opts ...Option) *Form {
	f := &Form{
		sender:        sender,
		displayWindow: DefaultDisplayWindow,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns the current field values.
func (f *Form) Values() Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Set updates one field. Fields can only change while the form is idle.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return ErrBusy
	}
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldSubject:
		f.values.Subject = value
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Submit delivers the current values. The form moves to submitting for the
// duration of the send, then to submitted or failed. After the display
// window it returns to idle; a successful submission clears every field.
func (f *Form) Submit(ctx context.Context) (Receipt, error) {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return Receipt{}, ErrBusy
	}
	if missing := f.values.Missing(); len(missing) > 0 {
		f.mu.Unlock()
		return Receipt{}, fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}
	msg := f.values
	f.state = StateSubmitting
	f.mu.Unlock()
	f.notify(StateSubmitting)

	sendErr := f.sender.Send(ctx, msg)

	f.mu.Lock()
	next := StateSubmitted
	if sendErr != nil {
		next = StateFailed
	}
	f.state = next
	f.scheduleReset(next)
	f.mu.Unlock()
	f.notify(next)

	if sendErr != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, sendErr)
	}
	return Receipt{ID: uuid.NewString(), At: f.now()}, nil
}

// Close stops a pending reset. The form stays in whatever state it is in.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.reset != nil {
		f.reset.Stop()
		f.reset = nil
	}
}

// scheduleReset must be called with f.mu held.
func (f *Form) scheduleReset(outcome State) {
	if f.closed {
		return
	}
	f.reset = time.AfterFunc(f.displayWindow, func() {
		f.mu.Lock()
		if f.state != outcome || f.closed {
			f.mu.Unlock()
			return
		}
		f.state = StateIdle
		if outcome == StateSubmitted {
			f.values = Message{}
		}
		f.reset = nil
		f.mu.Unlock()
		f.notify(StateIdle)
	})
}

func (f *Form) notify(s State) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
