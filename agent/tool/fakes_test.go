package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
)

type fakeProvider struct {
	repo storex.Repository
	err  error
}

func (f fakeProvider) Repository(context.Context) (storex.Repository, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.repo, nil
}

// fakeRepo is an in-memory catalogue with the same matching rules as the SQL queries.
type fakeRepo struct {
	users       []storex.User
	hotels      []storex.Hotel
	transport   []storex.TransportOption
	attractions []storex.Attraction
	details     []storex.DestinationDetail
	contacts    []storex.EmergencyContact
	bookings    []storex.Booking

	queryErr error
	panicMsg string
}

func (f *fakeRepo) check() error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.queryErr
}

func (f *fakeRepo) FindUserByContact(_ context.Context, contact string) (*storex.User, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Contact == contact {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user", storex.ErrNotFound)
}

func (f *fakeRepo) CreateUser(_ context.Context, user *storex.User) error {
	if err := f.check(); err != nil {
		return err
	}
	user.ID = int64(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeRepo) SearchHotels(_ context.Context, location, category string, limit int) ([]storex.Hotel, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	var out []storex.Hotel
	for _, h := range f.hotels {
		if strings.EqualFold(h.Location, location) && h.Category == category && len(out) < limit {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) HotelByID(_ context.Context, id string) (*storex.Hotel, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	for _, h := range f.hotels {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, fmt.Errorf("%w: hotel", storex.ErrNotFound)
}

func (f *fakeRepo) SearchTransport(_ context.Context, origin, destination, mode string) ([]storex.TransportOption, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	var out []storex.TransportOption
	for _, o := range f.transport {
		if strings.EqualFold(o.Origin, origin) && strings.EqualFold(o.Destination, destination) && (mode == "" || o.Mode == mode) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) TransportByID(_ context.Context, id string) (*storex.TransportOption, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	for _, o := range f.transport {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: transport option", storex.ErrNotFound)
}

func (f *fakeRepo) SearchAttractions(_ context.Context, location string, types []string, limit int) ([]storex.Attraction, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	var out []storex.Attraction
	for _, a := range f.attractions {
		if !strings.EqualFold(a.Location, location) || len(out) >= limit {
			continue
		}
		if len(types) > 0 && !containsString(types, a.Type) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) TopAttractions(_ context.Context, location string, limit int) ([]storex.Attraction, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	var out []storex.Attraction
	for _, a := range f.attractions {
		if a.Location == location && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) DestinationDescription(_ context.Context, location string) (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	for _, d := range f.details {
		if d.Location == location {
			return d.Description, nil
		}
	}
	return "", fmt.Errorf("%w: destination", storex.ErrNotFound)
}

func (f *fakeRepo) EmergencyContacts(context.Context) ([]storex.EmergencyContact, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.contacts, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, booking *storex.Booking) error {
	if err := f.check(); err != nil {
		return err
	}
	booking.ID = int64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, *booking)
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func seededRepo() *fakeRepo {
	return &fakeRepo{
		users: []storex.User{{ID: 1, FullName: "Asha Rao", Contact: "asha@example.com"}},
		hotels: []storex.Hotel{
			{ID: "GOA01", Name: "Taj Exotica", Location: "Goa", Category: "Luxury", PricePerNight: 28000, Rating: 4.8},
			{ID: "GOA03", Name: "The Hosteller Goa", Location: "Goa", Category: "Budget", PricePerNight: 1200, Rating: 4.2},
			{ID: "UDA03", Name: "Zostel Udaipur", Location: "Udaipur", Category: "Budget", PricePerNight: 1800, Rating: 4.4},
		},
		transport: []storex.TransportOption{
			{ID: "FLT07", Origin: "Mumbai", Destination: "Goa", Mode: "Flight", Provider: "IndiGo", Price: 4200, Duration: "1 hour"},
			{ID: "BUS11", Origin: "Mumbai", Destination: "Goa", Mode: "Bus", Provider: "Paulo Travels", Price: 1100, Duration: "12 hours"},
		},
		attractions: []storex.Attraction{
			{Name: "Baga Beach", Type: "Beach", Summary: "Lively beach.", Location: "Goa"},
			{Name: "Dudhsagar Falls Trek", Type: "Adventure", Summary: "Jungle trek.", Location: "Goa"},
			{Name: "Basilica of Bom Jesus", Type: "History", Summary: "Baroque church.", Location: "Goa"},
		},
		details: []storex.DestinationDetail{{Location: "Goa", Description: "India's beach capital."}},
	}
}

func newTestToolbox(repo *fakeRepo, opts ...Option) *Toolbox {
	base := []Option{
		WithConfirmationGenerator(func() (string, error) { return "TRV-TEST0001", nil }),
		WithClock(func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }),
	}
	return New(fakeProvider{repo: repo}, append(base, opts...)...)
}

func authedSession() *statex.SessionState {
	st := statex.NewSessionState("s-1", time.Now())
	st.Authenticate("Asha", "asha@example.com")
	return st
}

func testNow() time.Time {
	return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}
