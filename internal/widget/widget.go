// Package widget implements the chat widget lifecycle: take the composer's
// text, show it in the transcript, wait for the backend and show the reply.
//
// A submission is split so that every transcript mutation happens on the
// host's UI loop while the network call runs elsewhere:
//
//	ex, err := w.Begin()      // UI loop: user message, clear composer, loading node
//	res := ex.Await(ctx)      // any goroutine: the single backend call
//	err = w.Settle(ex, res)   // UI loop: remove loading node, append reply or apology
//
// Submit runs the three steps in sequence for hosts that can block.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

var (
	// ErrEmptyInput is returned when the composer holds only whitespace
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is returned when a submission is made while a reply is pending
	ErrBusy = errors.New("a reply is still pending")
	// ErrAlreadySettled is returned when an exchange is settled twice
	ErrAlreadySettled = errors.New("exchange already settled")
	// ErrForeignExchange is returned when an exchange is settled on another widget
	ErrForeignExchange = errors.New("exchange belongs to another widget")
)

// Composer is the text input holding the pending message
type Composer interface {
	Value() string
	Reset()
}

// Transcript is the scrolling container that receives message nodes
type Transcript interface {
	Append(n Node)
	Remove(id uuid.UUID) bool
	ScrollToBottom()
}

// Backend sends a message and returns the assistant's reply
type Backend interface {
	Send(ctx context.Context, message string) (string, error)
}

// Result is the outcome of an exchange
type Result struct {
	Reply string
	Err   error
}

// OK reports whether the backend returned a usable reply
func (r Result) OK() bool {
	return r.Err == nil
}

// Text returns what the assistant message shows for this result
func (r Result) Text() string {
	if r.Err != nil {
		return models.ApologyMessage
	}
	return r.Reply
}

// Exchange is one in-flight submission
type Exchange struct {
	ID      uuid.UUID
	Message string

	loadingID uuid.UUID
	backend   Backend
	owner     *ChatWidget
	started   time.Time
	settled   bool
}

// Await performs the backend call. It does not touch the transcript.
func (e *Exchange) Await(ctx context.Context) Result {
	reply, err := e.backend.Send(ctx, e.Message)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Reply: reply}
}

// ChatWidget mediates between the composer, the transcript and the backend
type ChatWidget struct {
	composer   Composer
	transcript Transcript
	backend    Backend
	logger     *zap.Logger

	mu      sync.Mutex
	pending *Exchange
}

// Option configures a ChatWidget
type Option func(*ChatWidget)

// WithLogger sets the diagnostic logger. Failures are reported here only.
func WithLogger(logger *zap.Logger) Option {
	return func(w *ChatWidget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a widget bound to its three collaborators
func New(composer Composer, transcript Transcript, backend Backend, opts ...Option) *ChatWidget {
	w := &ChatWidget{
		composer:   composer,
		transcript: transcript,
		backend:    backend,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Busy reports whether a reply is pending. Hosts disable the composer meanwhile.
func (w *ChatWidget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// Begin accepts the composer's text. In order it appends the user message,
// clears the composer and appends a loading node. Empty input and input made
// while busy are rejected with no effect.
func (w *ChatWidget) Begin() (*Exchange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		return nil, ErrBusy
	}

	text := strings.TrimSpace(w.composer.Value())
	if text == "" {
		return nil, ErrEmptyInput
	}

	w.append(Render(models.NewUserMessage(text)))
	w.composer.Reset()

	loading := LoadingNode()
	w.append(loading)

	ex := &Exchange{
		ID:        uuid.New(),
		Message:   text,
		loadingID: loading.ID,
		backend:   w.backend,
		owner:     w,
		started:   time.Now(),
	}
	w.pending = ex

	w.logger.Debug("exchange started",
		zap.String("exchange", ex.ID.String()),
		zap.Int("length", len(text)))

	return ex, nil
}

// Settle removes the exchange's loading node and appends exactly one
// assistant message: the reply, or the apology on failure.
func (w *ChatWidget) Settle(ex *Exchange, res Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ex == nil || ex.owner != w {
		return ErrForeignExchange
	}
	if ex.settled {
		return ErrAlreadySettled
	}
	ex.settled = true
	if w.pending == ex {
		w.pending = nil
	}

	if !w.transcript.Remove(ex.loadingID) {
		w.logger.Warn("loading indicator already gone",
			zap.String("exchange", ex.ID.String()))
	}

	elapsed := time.Since(ex.started)
	if res.OK() {
		w.logger.Debug("exchange succeeded",
			zap.String("exchange", ex.ID.String()),
			zap.Duration("elapsed", elapsed))
	} else {
		w.logger.Error("chat request failed",
			zap.String("exchange", ex.ID.String()),
			zap.String("kind", apierrors.Kind(res.Err)),
			zap.Int("status", apierrors.GetHTTPStatus(res.Err)),
			zap.Duration("elapsed", elapsed),
			zap.Error(res.Err))
	}

	w.append(Render(models.NewAssistantMessage(res.Text())))
	return nil
}

// Submit runs Begin, Await and Settle in sequence
func (w *ChatWidget) Submit(ctx context.Context) (Result, error) {
	ex, err := w.Begin()
	if err != nil {
		return Result{}, err
	}
	res := ex.Await(ctx)
	if err := w.Settle(ex, res); err != nil {
		return res, err
	}
	return res, nil
}

func (w *ChatWidget) append(n Node) {
	w.transcript.Append(n)
	w.transcript.ScrollToBottom()
}
