package tool

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
	metricsx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/metrics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MsgStoreUnavailable is returned by every store-backed handler when the store cannot be reached.
const MsgStoreUnavailable = "Database connection is not available."

// RepositoryProvider hands out the store repository, or storex.ErrUnavailable.
type RepositoryProvider interface {
	Repository(ctx context.Context) (storex.Repository, error)
}

// WeatherLookup answers a free-text forecast question for a location.
type WeatherLookup interface {
	Forecast(ctx context.Context, location, when string) (string, error)
}

type BookingEvent struct {
	ConfirmationNumber string    `json:"confirmation_number"`
	UserContact        string    `json:"user_contact"`
	HotelID            string    `json:"hotel_id"`
	HotelName          string    `json:"hotel_name"`
	TransportID        string    `json:"transport_id,omitempty"`
	Transport          string    `json:"transport"`
	BookedAt           time.Time `json:"booked_at"`
}

// BookingNotifier is told about each confirmed booking. Failures never undo a booking.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, event BookingEvent) error
}

// Toolbox runs the travel handlers against a session. Every handler returns an
// envelope; internal faults are recovered into error envelopes.
type Toolbox struct {
	repos           RepositoryProvider
	weather         WeatherLookup
	notifier        BookingNotifier
	metrics         *metricsx.Metrics
	newConfirmation func() (string, error)
	now             func() time.Time
}

type Option func(*Toolbox)

func WithWeather(w WeatherLookup) Option {
	return func(t *Toolbox) { t.weather = w }
}

func WithNotifier(n BookingNotifier) Option {
	return func(t *Toolbox) { t.notifier = n }
}

func WithMetrics(m *metricsx.Metrics) Option {
	return func(t *Toolbox) { t.metrics = m }
}

func WithConfirmationGenerator(fn func() (string, error)) Option {
	return func(t *Toolbox) {
		if fn != nil {
			t.newConfirmation = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Toolbox) {
		if now != nil {
			t.now = now
		}
	}
}

func New(repos RepositoryProvider, opts ...Option) *Toolbox {
	t := &Toolbox{
		repos:           repos,
		newConfirmation: NewConfirmationNumber,
		now:             time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// run wraps one handler call with panic recovery, logging and metrics.
func (t *Toolbox) run(ctx context.Context, name string, fn func(context.Context) contractx.Envelope) (env contractx.Envelope) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("tool", name).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("tool handler panicked")
			env = contractx.Failure(fmt.Sprintf("An internal error occurred in %s: %v", name, r))
		}
		t.metrics.ObserveTool(name, string(env.Status), time.Since(start))
		log.Debug().
			Str("tool", name).
			Str("status", string(env.Status)).
			Dur("elapsed", time.Since(start)).
			Msg("tool handler finished")
	}()
	return fn(ctx)
}

// repository resolves the store; ok is false when the caller must return env as is.
func (t *Toolbox) repository(ctx context.Context, name string) (repo storex.Repository, env contractx.Envelope, ok bool) {
	if t.repos == nil {
		return nil, t.unavailable(name, storex.ErrUnavailable), false
	}
	repo, err := t.repos.Repository(ctx)
	if err != nil {
		return nil, t.unavailable(name, err), false
	}
	return repo, contractx.Envelope{}, true
}

func (t *Toolbox) unavailable(name string, err error) contractx.Envelope {
	log.Warn().Err(err).Str("tool", name).Msg("store unavailable")
	return contractx.Failure(MsgStoreUnavailable)
}

// queryFailure maps a store error to the envelope the user sees: connectivity
// problems get the uniform unavailable message, anything else is described.
func (t *Toolbox) queryFailure(name, prefix string, err error) contractx.Envelope {
	if isUnavailable(err) {
		return t.unavailable(name, err)
	}
	log.Error().Err(err).Str("tool", name).Msg("store query failed")
	return contractx.Failure(fmt.Sprintf("%s: %v", prefix, err))
}

func isUnavailable(err error) bool {
	var opErr *net.OpError
	return errors.Is(err, storex.ErrUnavailable) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &opErr)
}

// rupees formats an amount with thousands separators, e.g. ₹12,345.
func rupees(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("₹%.0f", amount)
}
