package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func fill(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.Set(FieldName, "Ada"))
	require.NoError(t, f.Set(FieldEmail, "ada@example.com"))
	require.NoError(t, f.Set(FieldSubject, "Hello"))
	require.NoError(t, f.Set(FieldMessage, "Let's build something."))
}

func TestSubmitLifecycle(t *testing.T) {
	rec := &recorder{}
	release := make(chan struct{})
	sender := SenderFunc(func(ctx context.Context, msg Message) error {
		<-release
		return nil
	})
	f := NewForm(sender, WithDisplayWindow(20*time.Millisecond), WithOnChange(rec.record))
	defer f.Close()
	fill(t, f)

	type result struct {
		receipt Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		r, err := f.Submit(context.Background())
		done <- result{r, err}
	}()

	require.Eventually(t, func() bool { return f.State() == StateSubmitting }, time.Second, time.Millisecond)
	require.ErrorIs(t, f.Set(FieldName, "Grace"), ErrBusy)
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	res := <-done
	require.NoError(t, res.err)
	require.NotEmpty(t, res.receipt.ID)
	require.False(t, res.receipt.At.IsZero())

	require.Eventually(t, func() bool { return f.State() == StateIdle }, time.Second, time.Millisecond)
	require.Equal(t, Message{}, f.Values())
	require.Equal(t, []State{StateSubmitting, StateSubmitted, StateIdle}, rec.snapshot())
}

func TestSimulatedSubmissionHoldsForLatency(t *testing.T) {
	f := NewForm(SimulatedSender{Latency: 30 * time.Millisecond}, WithDisplayWindow(30*time.Millisecond))
	defer f.Close()
	fill(t, f)

	start := time.Now()
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	require.Equal(t, StateSubmitted, f.State())
	require.Equal(t, "Ada", f.Values().Name)

	require.Eventually(t, func() bool { return f.State() == StateIdle }, time.Second, time.Millisecond)
	require.Empty(t, f.Values().Name)
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	boom := errors.New("relay down")
	f := NewForm(SenderFunc(func(context.Context, Message) error { return boom }), WithDisplayWindow(10*time.Millisecond))
	defer f.Close()
	fill(t, f)

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionFailed)
	require.ErrorIs(t, err, boom)
	require.Equal(t, StateFailed, f.State())

	require.Eventually(t, func() bool { return f.State() == StateIdle }, time.Second, time.Millisecond)
	require.Equal(t, "Ada", f.Values().Name)
	require.Equal(t, "Let's build something.", f.Values().Message)
}

func TestSubmitIncomplete(t *testing.T) {
	called := false
	f := NewForm(SenderFunc(func(context.Context, Message) error {
		called = true
		return nil
	}))
	require.NoError(t, f.Set(FieldName, "Ada"))
	require.NoError(t, f.Set(FieldEmail, "  "))

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrIncomplete)
	require.False(t, called)
	require.Equal(t, StateIdle, f.State())
	require.Equal(t, []Field{FieldEmail, FieldSubject, FieldMessage}, f.Values().Missing())
}

func TestSetUnknownField(t *testing.T) {
	f := NewForm(SimulatedSender{})
	require.ErrorIs(t, f.Set(Field(9), "x"), ErrUnknownField)
}

func TestCloseCancelsReset(t *testing.T) {
	f := NewForm(SimulatedSender{}, WithDisplayWindow(10*time.Millisecond))
	fill(t, f)
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	f.Close()

	time.Sleep(40 * time.Millisecond)
	require.Equal(t, StateSubmitted, f.State())
}

func TestSimulatedSenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SimulatedSender{Latency: time.Minute}.Send(ctx, Message{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSMTPSender(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Password: "pw", To: "owner@example.com"}
	s := NewSMTPSender(cfg)

	var gotAddr string
	var gotTo []string
	var gotBody string
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{Name: "Ada", Email: "ada@example.com\r\nBcc: x@example.com", Subject: "Hi", Message: "Body"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, []string{"owner@example.com"}, gotTo)
	require.Contains(t, gotBody, "Subject: Portfolio Contact: Hi\r\n")
	require.Contains(t, gotBody, "Reply-To: ada@example.com  Bcc: x@example.com\r\n")
	headers, _, found := strings.Cut(gotBody, "\r\n\r\n")
	require.True(t, found)
	require.NotContains(t, headers, "\r\nBcc:")
}

func TestSMTPSenderRequiresCredentials(t *testing.T) {
	err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"}).Send(context.Background(), Message{})
	require.Error(t, err)
}
