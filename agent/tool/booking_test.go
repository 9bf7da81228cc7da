package tool

import (
	"context"
	"errors"
	"regexp"
	"testing"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

type recordingNotifier struct {
	events []BookingEvent
	err    error
}

func (r *recordingNotifier) BookingConfirmed(_ context.Context, e BookingEvent) error {
	r.events = append(r.events, e)
	return r.err
}

func TestConfirmBookingWithTransport(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	notifier := &recordingNotifier{}
	tb := newTestToolbox(repo, WithNotifier(notifier))

	env := tb.ConfirmBooking(context.Background(), authedSession(), "GOA03", "BUS11")
	if !env.OK() {
		t.Fatalf("ConfirmBooking() = %+v", env)
	}
	if env.Data["confirmation_id"] != "TRV-TEST0001" || env.Data["booked_transport"] != "Paulo Travels (Bus)" {
		t.Fatalf("data = %v", env.Data)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(repo.bookings))
	}
	b := repo.bookings[0]
	if b.UserContact != "asha@example.com" || b.BookedHotelID != "GOA03" || b.BookedTransportID == nil || *b.BookedTransportID != "BUS11" {
		t.Fatalf("booking row = %+v", b)
	}
	if len(notifier.events) != 1 || notifier.events[0].HotelName != "The Hosteller Goa" {
		t.Fatalf("notifications = %+v", notifier.events)
	}
	if !notifier.events[0].BookedAt.Equal(testNow()) {
		t.Fatalf("booked_at = %v", notifier.events[0].BookedAt)
	}
}

func TestConfirmBookingUnknownHotelWritesNothing(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	env := newTestToolbox(repo).ConfirmBooking(context.Background(), authedSession(), "NOPE", "BUS11")
	if env.OK() || env.ErrorMessage != "Could not find the selected hotel with ID NOPE." {
		t.Fatalf("ConfirmBooking() = %+v", env)
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("bookings = %d, want 0", len(repo.bookings))
	}
}

func TestConfirmBookingUnknownTransportBooksHotelOnly(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	env := newTestToolbox(repo).ConfirmBooking(context.Background(), authedSession(), "GOA01", "XYZ")
	if !env.OK() || env.Data["booked_transport"] != "Not included" {
		t.Fatalf("ConfirmBooking() = %+v", env)
	}
	if len(repo.bookings) != 1 || repo.bookings[0].BookedTransportID != nil {
		t.Fatalf("bookings = %+v, want one row without transport", repo.bookings)
	}
}

func TestConfirmBookingRequiresAuthentication(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	st := statex.NewSessionState("s", testNow())
	env := newTestToolbox(repo).ConfirmBooking(context.Background(), st, "GOA01", "")
	if env.OK() || env.ErrorMessage != "User is not authenticated. Cannot complete booking." {
		t.Fatalf("ConfirmBooking() = %+v", env)
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("bookings written for anonymous user")
	}
}

func TestConfirmBookingRepeatsCreateSeparateRows(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	tb := New(fakeProvider{repo: repo})
	st := authedSession()
	first := tb.ConfirmBooking(context.Background(), st, "GOA01", "")
	second := tb.ConfirmBooking(context.Background(), st, "GOA01", "")
	if !first.OK() || !second.OK() {
		t.Fatalf("ConfirmBooking() = %+v, %+v", first, second)
	}
	if len(repo.bookings) != 2 || first.Data["confirmation_id"] == second.Data["confirmation_id"] {
		t.Fatalf("bookings = %+v", repo.bookings)
	}
}

func TestConfirmBookingNotifierFailureKeepsBooking(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	tb := newTestToolbox(repo, WithNotifier(&recordingNotifier{err: errors.New("queue down")}))
	if env := tb.ConfirmBooking(context.Background(), authedSession(), "GOA01", ""); !env.OK() {
		t.Fatalf("ConfirmBooking() = %+v", env)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(repo.bookings))
	}
}

func TestNewConfirmationNumber(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^TRV-[A-Z0-9]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got, err := NewConfirmationNumber()
		if err != nil {
			t.Fatalf("NewConfirmationNumber() error = %v", err)
		}
		if !pattern.MatchString(got) {
			t.Fatalf("NewConfirmationNumber() = %q", got)
		}
		seen[got] = true
	}
	if len(seen) < 49 {
		t.Fatalf("confirmation numbers repeat too often: %d unique of 50", len(seen))
	}
}

