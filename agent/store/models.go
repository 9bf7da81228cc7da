package store

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement"`
	FullName  string    `bun:"full_name,notnull"`
	Contact   string    `bun:"contact,notnull,unique"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type Hotel struct {
	bun.BaseModel `bun:"table:hotels,alias:h"`

	ID            string  `bun:"id,pk"`
	Name          string  `bun:"name,notnull"`
	Location      string  `bun:"location,notnull"`
	Category      string  `bun:"category,notnull"`
	PricePerNight int64   `bun:"price_per_night,notnull,default:0"`
	Rating        float64 `bun:"rating,notnull,default:0"`
}

type TransportOption struct {
	bun.BaseModel `bun:"table:transport_options,alias:t"`

	ID          string `bun:"id,pk"`
	Origin      string `bun:"origin,notnull"`
	Destination string `bun:"destination,notnull"`
	Mode        string `bun:"mode,notnull"`
	Provider    string `bun:"provider,notnull"`
	Price       int64  `bun:"price,notnull,default:0"`
	Duration    string `bun:"duration"`
}

type Attraction struct {
	bun.BaseModel `bun:"table:attractions,alias:a"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Name     string `bun:"name,notnull"`
	Type     string `bun:"type,notnull"`
	Summary  string `bun:"summary"`
	Location string `bun:"location,notnull"`
}

type DestinationDetail struct {
	bun.BaseModel `bun:"table:destination_details,alias:d"`

	Location    string `bun:"location,pk"`
	Description string `bun:"description,notnull"`
}

type EmergencyContact struct {
	bun.BaseModel `bun:"table:emergency_contacts,alias:e"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Type        string `bun:"type,notnull"`
	Number      string `bun:"number,notnull"`
	Description string `bun:"description"`
}

// Booking is an append-only record. The same user may book the same hotel more than once.
type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:b"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	ConfirmationNumber string    `bun:"confirmation_number,notnull,unique"`
	UserContact        string    `bun:"user_contact,notnull"`
	BookedHotelID      string    `bun:"booked_hotel_id,notnull"`
	BookedTransportID  *string   `bun:"booked_transport_id,nullzero"`
	CreatedAt          time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Models lists every table in creation order.
func Models() []any {
	return []any{
		(*User)(nil),
		(*Hotel)(nil),
		(*TransportOption)(nil),
		(*Attraction)(nil),
		(*DestinationDetail)(nil),
		(*EmergencyContact)(nil),
		(*Booking)(nil),
	}
}
