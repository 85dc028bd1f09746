package models

import (
	"errors"
	"fmt"
)

// BookingState is the behaviour of a booking in one status.
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
	Complete(booking *Booking) error
}

// PendingState: awaiting the host.
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(booking *Booking) error {
	return errors.New("cannot complete a pending booking")
}

// ConfirmedState: accepted by the host.
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return errors.New("booking already confirmed")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking) error {
	booking.Status = BookingStatusCompleted
	return nil
}

// CompletedState is terminal.
type CompletedState struct{}

func (s *CompletedState) Confirm(booking *Booking) error {
	return errors.New("booking already completed")
}

func (s *CompletedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel a completed booking")
}

func (s *CompletedState) Complete(booking *Booking) error {
	return errors.New("booking already completed")
}

// CancelledState is terminal.
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return errors.New("cannot confirm a cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.New("booking already cancelled")
}

func (s *CancelledState) Complete(booking *Booking) error {
	return errors.New("cannot complete a cancelled booking")
}

// GetBookingState returns the state object for status, nil for unknown statuses.
func GetBookingState(status BookingStatus) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCompleted:
		return &CompletedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return nil
	}
}

// Transition moves booking to target. The booking is left untouched on error.
func (b *Booking) Transition(target BookingStatus) error {
	state := GetBookingState(b.Status)
	if state == nil {
		return fmt.Errorf("unknown current status %q", b.Status)
	}
	next := *b
	var err error
	switch target {
	case BookingStatusConfirmed:
		err = state.Confirm(&next)
	case BookingStatusCancelled:
		err = state.Cancel(&next)
	case BookingStatusCompleted:
		err = state.Complete(&next)
	default:
		err = fmt.Errorf("cannot move a booking to %q", target)
	}
	if err != nil {
		return err
	}
	b.Status = next.Status
	return nil
}

// CanTransition reports whether from → to is in the transition table.
func CanTransition(from, to BookingStatus) bool {
	b := Booking{Status: from}
	return b.Transition(to) == nil
}
