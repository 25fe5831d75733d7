package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/meetup-booking/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{}, &domain.ParticipationRequest{})
}

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookingOpen
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingRepo) RequestByID(ctx context.Context, id string) (*domain.ParticipationRequest, error) {
	var req domain.ParticipationRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

// Join files a PENDING request. Runs in a txn so that "exactly one
// non-terminal request per (booking,user)" holds under concurrent joins.
func (r *BookingRepo) Join(ctx context.Context, bookingID, userID string) (*domain.ParticipationRequest, error) {
	req := &domain.ParticipationRequest{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		UserID:    userID,
		Status:    domain.RequestPending,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookingID).Error; err != nil {
			return notFound(err)
		}
		if b.Status == domain.BookingCancelled {
			return domain.ErrBookingCancelled
		}
		var open int64
		if err := tx.Model(&domain.ParticipationRequest{}).
			Where("booking_id = ? AND user_id = ? AND status IN ?",
				bookingID, userID,
				[]domain.RequestStatus{domain.RequestPending, domain.RequestApproved}).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return domain.ErrDuplicateRequest
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Approve admits a participant. The whole check-then-act (host check,
// capacity check, member append, counter bump) runs under the booking's row
// lock so two approvals racing for the last slot are serialized: one sees
// the slot, the other sees FULL. The request row is locked too: a reject
// committing between an unlocked read and the save would be overwritten,
// resurrecting a terminal request.
func (r *BookingRepo) Approve(ctx context.Context, bookingID, requestID, callerID string) (*domain.Booking, *domain.ParticipationRequest, error) {
	var (
		b   domain.Booking
		req domain.ParticipationRequest
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookingID).Error; err != nil {
			return notFound(err)
		}
		if err := b.AuthorizeHost(callerID); err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ? AND booking_id = ?", requestID, bookingID).Error; err != nil {
			return notFound(err)
		}
		if err := req.Approve(); err != nil {
			return err
		}
		if err := b.AddMember(req.UserID); err != nil {
			return err
		}
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &b, &req, nil
}

// Reject never touches the capacity counter, so a conditioned single-row
// update is enough; no transaction needed.
func (r *BookingRepo) Reject(ctx context.Context, bookingID, requestID, callerID string) (*domain.ParticipationRequest, error) {
	b, err := r.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.AuthorizeHost(callerID); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&domain.ParticipationRequest{}).
		Where("id = ? AND booking_id = ? AND status = ?", requestID, bookingID, domain.RequestPending).
		Update("status", domain.RequestRejected)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the request is unknown or it already left PENDING.
		if _, err := r.RequestByID(ctx, requestID); err != nil {
			return nil, err
		}
		return nil, domain.ErrRequestNotPending
	}
	return r.RequestByID(ctx, requestID)
}

func (r *BookingRepo) Withdraw(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookingID).Error; err != nil {
			return notFound(err)
		}
		if err := b.RemoveMember(callerID); err != nil {
			return err
		}
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// MarkWithdrawn is the best-effort follow-up after Withdraw. It is outside
// the capacity transaction: the request status is bookkeeping, not part of
// the capacity invariant.
func (r *BookingRepo) MarkWithdrawn(ctx context.Context, bookingID, userID string) error {
	return r.db.WithContext(ctx).Model(&domain.ParticipationRequest{}).
		Where("booking_id = ? AND user_id = ? AND status = ?", bookingID, userID, domain.RequestApproved).
		Update("status", domain.RequestWithdrawn).Error
}

func (r *BookingRepo) Cancel(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookingID).Error; err != nil {
			return notFound(err)
		}
		if err := b.Cancel(callerID, reason); err != nil {
			return err
		}
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CancelRequests fans the terminal state out to every non-terminal request.
// Batched, best-effort: CANCELLED is terminal, so no capacity math depends
// on this write landing atomically with the cancellation.
func (r *BookingRepo) CancelRequests(ctx context.Context, bookingID string) ([]domain.ParticipationRequest, error) {
	var reqs []domain.ParticipationRequest
	if err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status IN ?", bookingID,
			[]domain.RequestStatus{domain.RequestPending, domain.RequestApproved}).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	ids := make([]string, 0, len(reqs))
	for i := range reqs {
		ids = append(ids, reqs[i].ID)
		reqs[i].Status = domain.RequestCancelled
		reqs[i].UpdatedAt = now
	}
	err := r.db.WithContext(ctx).Model(&domain.ParticipationRequest{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": domain.RequestCancelled, "updated_at": now}).Error
	return reqs, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
