package tool

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
)

const (
	ConfirmationPrefix   = "TRV-"
	confirmationLength   = 8
	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	transportNotIncluded = "Not included"
)

// NewConfirmationNumber returns the prefix followed by 8 characters drawn
// uniformly from A-Z and 0-9.
func NewConfirmationNumber() (string, error) {
	var b strings.Builder
	b.WriteString(ConfirmationPrefix)
	size := big.NewInt(int64(len(confirmationAlphabet)))
	for i := 0; i < confirmationLength; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate confirmation number: %w", err)
		}
		b.WriteByte(confirmationAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// ConfirmBooking records a booking for the authenticated user. The hotel must
// exist. A transport id that does not resolve is dropped and the booking goes
// ahead without it. Repeated confirmations create separate bookings.
func (t *Toolbox) ConfirmBooking(ctx context.Context, st *statex.SessionState, hotelID, transportID string) contractx.Envelope {
	return t.run(ctx, ToolConfirmBooking, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolConfirmBooking)
		if !ok {
			return env
		}
		if st == nil || st.UserContact == "" {
			return contractx.Failure("User is not authenticated. Cannot complete booking.")
		}

		hotelID = strings.TrimSpace(hotelID)
		transportID = strings.TrimSpace(transportID)
		if hotelID == "" {
			return contractx.Failure("Please tell me which hotel you'd like to book.")
		}

		hotel, err := repo.HotelByID(ctx, hotelID)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return contractx.Failure(fmt.Sprintf("Could not find the selected hotel with ID %s.", hotelID))
		case err != nil:
			return t.queryFailure(ToolConfirmBooking, "A system error occurred during final booking", err)
		}

		transport := transportNotIncluded
		var bookedTransportID *string
		if transportID != "" {
			option, err := repo.TransportByID(ctx, transportID)
			switch {
			case errors.Is(err, storex.ErrNotFound):
				log.Info().Str("transport_id", transportID).Msg("transport not found, booking hotel only")
			case err != nil:
				return t.queryFailure(ToolConfirmBooking, "A system error occurred during final booking", err)
			default:
				transport = fmt.Sprintf("%s (%s)", option.Provider, option.Mode)
				id := option.ID
				bookedTransportID = &id
			}
		}

		confirmation, err := t.newConfirmation()
		if err != nil {
			return contractx.Failure(fmt.Sprintf("A system error occurred during final booking: %v", err))
		}

		booking := &storex.Booking{
			ConfirmationNumber: confirmation,
			UserContact:        st.UserContact,
			BookedHotelID:      hotel.ID,
			BookedTransportID:  bookedTransportID,
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			return t.queryFailure(ToolConfirmBooking, "A system error occurred during final booking", err)
		}

		t.notify(ctx, BookingEvent{
			ConfirmationNumber: confirmation,
			UserContact:        st.UserContact,
			HotelID:            hotel.ID,
			HotelName:          hotel.Name,
			TransportID:        lo.FromPtr(bookedTransportID),
			Transport:          transport,
			BookedAt:           t.now().UTC(),
		})

		return contractx.Success(map[string]any{
			"confirmation_id":  confirmation,
			"booked_hotel":     hotel.Name,
			"booked_hotel_id":  hotel.ID,
			"booked_transport": transport,
		})
	})
}

func (t *Toolbox) notify(ctx context.Context, event BookingEvent) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.BookingConfirmed(ctx, event); err != nil {
		log.Warn().Err(err).Str("confirmation", event.ConfirmationNumber).Msg("booking notification failed")
	}
}
