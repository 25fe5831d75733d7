package domain

import "time"

type AdjustDirection string

const (
	DirectionAdd      AdjustDirection = "ADD"
	DirectionSubtract AdjustDirection = "SUBTRACT"
)

type LedgerKind string

const (
	LedgerEarn  LedgerKind = "EARN"
	LedgerSpend LedgerKind = "SPEND"
)

type PointsAccount struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LedgerEntry is append-only. The chronological sum of Amount over a user's
// entries equals the account balance at every point.
type LedgerEntry struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	UserID        string     `gorm:"index" json:"user_id"`
	Amount        int64      `json:"amount"` // signed: positive for EARN, negative for SPEND
	Kind          LedgerKind `json:"kind"`
	Reason        string     `json:"reason"`
	BalanceBefore int64      `json:"balance_before"`
	BalanceAfter  int64      `json:"balance_after"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Apply moves the balance and returns the entry snapshot for the ledger.
// Runs under the account's row lock.
func (a *PointsAccount) Apply(amount int64, dir AdjustDirection, reason string) (*LedgerEntry, error) {
	before := a.Balance
	signed := amount
	kind := LedgerEarn
	if dir == DirectionSubtract {
		if a.Balance < amount {
			return nil, ErrInsufficientBalance
		}
		signed = -amount
		kind = LedgerSpend
	}
	a.Balance += signed
	return &LedgerEntry{
		UserID:        a.UserID,
		Amount:        signed,
		Kind:          kind,
		Reason:        reason,
		BalanceBefore: before,
		BalanceAfter:  a.Balance,
	}, nil
}
