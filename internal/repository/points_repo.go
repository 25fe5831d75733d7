package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/meetup-booking/internal/domain"
)

type PointsRepo struct{ db *gorm.DB }

func NewPointsRepo(db *gorm.DB) *PointsRepo {
	return &PointsRepo{db: db}
}

func (r *PointsRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.PointsAccount{}, &domain.LedgerEntry{})
}

// Adjust moves the balance and appends the ledger entry in one transaction,
// under the account's row lock. Concurrent adjustments to the same account
// serialize here; a caller never sees a lost update. Accounts are created
// lazily on the first credit; a debit against a missing account is NotFound.
func (r *PointsRepo) Adjust(ctx context.Context, userID string, amount int64, dir domain.AdjustDirection, reason string) (*domain.LedgerEntry, error) {
	var entry *domain.LedgerEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc domain.PointsAccount
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&acc, "user_id = ?", userID).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound) && dir == domain.DirectionAdd:
			acc = domain.PointsAccount{UserID: userID}
			if err := tx.Create(&acc).Error; err != nil {
				return err
			}
		default:
			return notFound(err)
		}

		e, err := acc.Apply(amount, dir, reason)
		if err != nil {
			return err
		}
		e.ID = uuid.NewString()
		if err := tx.Save(&acc).Error; err != nil {
			return err
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PointsRepo) Balance(ctx context.Context, userID string) (int64, error) {
	var acc domain.PointsAccount
	if err := r.db.WithContext(ctx).First(&acc, "user_id = ?", userID).Error; err != nil {
		return 0, notFound(err)
	}
	return acc.Balance, nil
}

func (r *PointsRepo) History(ctx context.Context, userID string, page, size int32) ([]domain.LedgerEntry, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.LedgerEntry{}).Where("user_id = ?", userID)
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.LedgerEntry
	if err := qb.Order("created_at DESC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
