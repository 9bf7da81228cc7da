package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Repository is every read and write the travel handlers make against the store.
type Repository interface {
	FindUserByContact(ctx context.Context, contact string) (*User, error)
	CreateUser(ctx context.Context, user *User) error

	SearchHotels(ctx context.Context, location, category string, limit int) ([]Hotel, error)
	HotelByID(ctx context.Context, id string) (*Hotel, error)

	SearchTransport(ctx context.Context, origin, destination, mode string) ([]TransportOption, error)
	TransportByID(ctx context.Context, id string) (*TransportOption, error)

	SearchAttractions(ctx context.Context, location string, types []string, limit int) ([]Attraction, error)
	TopAttractions(ctx context.Context, location string, limit int) ([]Attraction, error)
	DestinationDescription(ctx context.Context, location string) (string, error)

	EmergencyContacts(ctx context.Context) ([]EmergencyContact, error)

	CreateBooking(ctx context.Context, booking *Booking) error
}

type BunRepository struct {
	db      bun.IDB
	timeout time.Duration
}

func NewBunRepository(db bun.IDB, timeout time.Duration) *BunRepository {
	return &BunRepository{db: db, timeout: timeout}
}

func (r *BunRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BunRepository) FindUserByContact(ctx context.Context, contact string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user User
	if err := userByContactQuery(r.db, &user, contact).Scan(ctx); err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (r *BunRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.NewInsert().Model(user).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *BunRepository) SearchHotels(ctx context.Context, location, category string, limit int) ([]Hotel, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var hotels []Hotel
	if err := hotelSearchQuery(r.db, &hotels, location, category, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search hotels: %w", err)
	}
	return hotels, nil
}

func (r *BunRepository) HotelByID(ctx context.Context, id string) (*Hotel, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var hotel Hotel
	if err := r.db.NewSelect().Model(&hotel).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return nil, notFound(err, "hotel")
	}
	return &hotel, nil
}

func (r *BunRepository) SearchTransport(ctx context.Context, origin, destination, mode string) ([]TransportOption, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var options []TransportOption
	if err := transportSearchQuery(r.db, &options, origin, destination, mode).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search transport: %w", err)
	}
	return options, nil
}

func (r *BunRepository) TransportByID(ctx context.Context, id string) (*TransportOption, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var option TransportOption
	if err := r.db.NewSelect().Model(&option).Where("id = ?", id).Limit(1).Scan(ctx); err != nil {
		return nil, notFound(err, "transport option")
	}
	return &option, nil
}

func (r *BunRepository) SearchAttractions(ctx context.Context, location string, types []string, limit int) ([]Attraction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var attractions []Attraction
	if err := attractionSearchQuery(r.db, &attractions, location, types, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search attractions: %w", err)
	}
	return attractions, nil
}

func (r *BunRepository) TopAttractions(ctx context.Context, location string, limit int) ([]Attraction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var attractions []Attraction
	if err := topAttractionsQuery(r.db, &attractions, location, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("top attractions: %w", err)
	}
	return attractions, nil
}

func (r *BunRepository) DestinationDescription(ctx context.Context, location string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var detail DestinationDetail
	err := r.db.NewSelect().
		Model(&detail).
		Column("description").
		Where("location = ?", location).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return "", notFound(err, "destination")
	}
	return detail.Description, nil
}

func (r *BunRepository) EmergencyContacts(ctx context.Context) ([]EmergencyContact, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var contacts []EmergencyContact
	err := r.db.NewSelect().
		Model(&contacts).
		Column("type", "number", "description").
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("emergency contacts: %w", err)
	}
	return contacts, nil
}

func (r *BunRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.NewInsert().Model(booking).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func userByContactQuery(db bun.IDB, out *User, contact string) *bun.SelectQuery {
	return db.NewSelect().
		Model(out).
		Where("contact = ?", strings.TrimSpace(contact)).
		Limit(1)
}

// hotelSearchQuery matches location case-insensitively and returns the best rated first.
func hotelSearchQuery(db bun.IDB, out *[]Hotel, location, category string, limit int) *bun.SelectQuery {
	return db.NewSelect().
		Model(out).
		Where("location ILIKE ?", likeExact(location)).
		Where("category = ?", category).
		OrderExpr("rating DESC").
		Limit(limit)
}

func transportSearchQuery(db bun.IDB, out *[]TransportOption, origin, destination, mode string) *bun.SelectQuery {
	q := db.NewSelect().
		Model(out).
		Where("origin ILIKE ?", likeExact(origin)).
		Where("destination ILIKE ?", likeExact(destination))
	if mode != "" {
		q = q.Where("mode = ?", mode)
	}
	return q.OrderExpr("price ASC")
}

func attractionSearchQuery(db bun.IDB, out *[]Attraction, location string, types []string, limit int) *bun.SelectQuery {
	q := db.NewSelect().
		Model(out).
		Column("name", "type", "summary").
		Where("location ILIKE ?", likeExact(location))
	if len(types) > 0 {
		q = q.Where("type IN (?)", bun.In(types))
	}
	return q.Limit(limit)
}

func topAttractionsQuery(db bun.IDB, out *[]Attraction, location string, limit int) *bun.SelectQuery {
	return db.NewSelect().
		Model(out).
		Column("name", "type").
		Where("location = ?", location).
		Limit(limit)
}

// likeExact escapes LIKE wildcards so ILIKE behaves as a case-insensitive equality.
func likeExact(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(strings.TrimSpace(s))
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
