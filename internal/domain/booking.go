package domain

import (
	"time"

	"github.com/lib/pq"
)

type BookingStatus string

const (
	BookingOpen      BookingStatus = "OPEN"
	BookingFull      BookingStatus = "FULL"
	BookingCancelled BookingStatus = "CANCELLED"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestWithdrawn RequestStatus = "WITHDRAWN"
	RequestCancelled RequestStatus = "CANCELLED"
)

func (s RequestStatus) Terminal() bool {
	return s == RequestRejected || s == RequestWithdrawn || s == RequestCancelled
}

type Booking struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	HostID          string         `gorm:"index" json:"host_id"`
	Title           string         `json:"title"`
	CapacityCurrent int            `json:"capacity_current"`
	CapacityMax     int            `json:"capacity_max"`
	MemberIDs       pq.StringArray `gorm:"type:text[]" json:"member_ids"`
	Status          BookingStatus  `gorm:"index" json:"status"`
	CancelReason    string         `json:"cancel_reason,omitempty"`
	EventAt         time.Time      `json:"event_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type ParticipationRequest struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	BookingID string        `gorm:"index" json:"booking_id"`
	UserID    string        `gorm:"index" json:"user_id"`
	Status    RequestStatus `gorm:"index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AuthorizeHost gates host-only actions (approve, reject, cancel).
func (b *Booking) AuthorizeHost(callerID string) error {
	if callerID != b.HostID {
		return ErrNotHost
	}
	return nil
}

func (b *Booking) IsMember(userID string) bool {
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember admits an approved participant. Must run under the booking's
// row lock: the capacity check and the increment form one atomic step.
func (b *Booking) AddMember(userID string) error {
	if b.Status == BookingCancelled {
		return ErrBookingCancelled
	}
	if b.CapacityCurrent >= b.CapacityMax {
		return ErrCapacityFull
	}
	if b.IsMember(userID) {
		return nil
	}
	b.MemberIDs = append(b.MemberIDs, userID)
	b.CapacityCurrent = len(b.MemberIDs)
	if b.CapacityCurrent == b.CapacityMax {
		b.Status = BookingFull
	}
	return nil
}

// RemoveMember handles a participant withdrawal. Hosts cancel, never withdraw.
func (b *Booking) RemoveMember(userID string) error {
	if b.Status == BookingCancelled {
		return ErrBookingCancelled
	}
	if userID == b.HostID {
		return ErrHostCannotWithdraw
	}
	if !b.IsMember(userID) {
		return ErrNotParticipant
	}
	kept := b.MemberIDs[:0]
	for _, id := range b.MemberIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	b.MemberIDs = kept
	b.CapacityCurrent = len(b.MemberIDs)
	if b.Status == BookingFull {
		b.Status = BookingOpen
	}
	return nil
}

// Cancel is terminal and idempotency-guarded: a second cancel fails rather
// than silently succeeding, so duplicate client calls are visible.
func (b *Booking) Cancel(callerID, reason string) error {
	if callerID != b.HostID {
		return ErrNotHost
	}
	if b.Status == BookingCancelled {
		return ErrBookingCancelled
	}
	b.Status = BookingCancelled
	b.CancelReason = reason
	return nil
}

func (r *ParticipationRequest) Approve() error {
	if r.Status != RequestPending {
		return ErrRequestNotPending
	}
	r.Status = RequestApproved
	return nil
}

func (r *ParticipationRequest) Reject() error {
	if r.Status != RequestPending {
		return ErrRequestNotPending
	}
	r.Status = RequestRejected
	return nil
}
