// Package notification pushes realtime events to connected users over websockets.
package notification

import (
	"fmt"
	"net/http"

	"script9/constants"
	"script9/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the authenticated user id.
const SessionUserKey = "userID"

// Event is the JSON frame written to websocket clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Service interface {
	NotifyUser(userID string, event Event) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// NotifyUser writes event to every open session of userID and to no one else.
func (s *MelodyService) NotifyUser(userID string, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return s.m.BroadcastFilter(payload, func(sess *melody.Session) bool {
		id, ok := sess.Get(SessionUserKey)
		return ok && id == userID
	})
}

// HandleRequest upgrades the connection and binds the session to userID.
func (s *MelodyService) HandleRequest(w http.ResponseWriter, r *http.Request, userID string) error {
	return s.m.HandleRequestWithKeys(w, r, map[string]interface{}{SessionUserKey: userID})
}

// Noop drops every event.
type Noop struct{}

func (Noop) NotifyUser(string, Event) error { return nil }

// MessageCreated is sent to the recipient of a new message.
func MessageCreated(msg *models.Message) Event {
	return Event{Type: constants.EventMessageCreated, Data: msg}
}

// BookingStatusChanged is sent to the other party of a status change.
func BookingStatusChanged(booking *models.Booking, from models.BookingStatus) Event {
	return Event{
		Type: constants.EventBookingStatusChanged,
		Data: map[string]interface{}{
			"bookingId": booking.ID,
			"from":      from,
			"to":        booking.Status,
		},
	}
}
