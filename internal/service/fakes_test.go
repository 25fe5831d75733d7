package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/you/meetup-booking/internal/domain"
)

// In-memory stores mirroring the repository transaction semantics: each
// operation is one critical section, applied clone-then-commit so a failed
// rule check leaves no partial state — the same all-or-nothing the row-lock
// transactions give.

type sentNote struct {
	UserID string
	Type   string
}

type fakeDispatcher struct {
	mu   sync.Mutex
	fail bool
	sent []sentNote
}

func (d *fakeDispatcher) Notify(_ context.Context, userID, typ, _, _ string, _ map[string]string) (string, error) {
	if d.fail {
		return "", errors.New("push provider down")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNote{UserID: userID, Type: typ})
	return uuid.NewString(), nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	requests map[string]*domain.ParticipationRequest
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings: map[string]*domain.Booking{},
		requests: map[string]*domain.ParticipationRequest{},
	}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	cp.MemberIDs = append(pq.StringArray{}, b.MemberIDs...)
	return &cp
}

func (f *fakeBookingStore) Create(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookingOpen
	}
	f.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (f *fakeBookingStore) ByID(_ context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (f *fakeBookingStore) Join(_ context.Context, bookingID, userID string) (*domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status == domain.BookingCancelled {
		return nil, domain.ErrBookingCancelled
	}
	for _, r := range f.requests {
		if r.BookingID == bookingID && r.UserID == userID && !r.Status.Terminal() {
			return nil, domain.ErrDuplicateRequest
		}
	}
	req := &domain.ParticipationRequest{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		UserID:    userID,
		Status:    domain.RequestPending,
	}
	f.requests[req.ID] = req
	cp := *req
	return &cp, nil
}

func (f *fakeBookingStore) Approve(_ context.Context, bookingID, requestID, callerID string) (*domain.Booking, *domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bookings[bookingID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	storedReq, ok := f.requests[requestID]
	if !ok || storedReq.BookingID != bookingID {
		return nil, nil, domain.ErrNotFound
	}
	b := cloneBooking(stored)
	req := *storedReq
	if err := b.AuthorizeHost(callerID); err != nil {
		return nil, nil, err
	}
	if err := req.Approve(); err != nil {
		return nil, nil, err
	}
	if err := b.AddMember(req.UserID); err != nil {
		return nil, nil, err
	}
	f.bookings[bookingID] = b
	f.requests[requestID] = &req
	reqOut := req
	return cloneBooking(b), &reqOut, nil
}

func (f *fakeBookingStore) Reject(_ context.Context, bookingID, requestID, callerID string) (*domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := b.AuthorizeHost(callerID); err != nil {
		return nil, err
	}
	storedReq, ok := f.requests[requestID]
	if !ok || storedReq.BookingID != bookingID {
		return nil, domain.ErrNotFound
	}
	req := *storedReq
	if err := req.Reject(); err != nil {
		return nil, err
	}
	f.requests[requestID] = &req
	out := req
	return &out, nil
}

func (f *fakeBookingStore) Withdraw(_ context.Context, bookingID, callerID string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := cloneBooking(stored)
	if err := b.RemoveMember(callerID); err != nil {
		return nil, err
	}
	f.bookings[bookingID] = b
	return cloneBooking(b), nil
}

func (f *fakeBookingStore) MarkWithdrawn(_ context.Context, bookingID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.BookingID == bookingID && r.UserID == userID && r.Status == domain.RequestApproved {
			r.Status = domain.RequestWithdrawn
		}
	}
	return nil
}

func (f *fakeBookingStore) Cancel(_ context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := cloneBooking(stored)
	if err := b.Cancel(callerID, reason); err != nil {
		return nil, err
	}
	f.bookings[bookingID] = b
	return cloneBooking(b), nil
}

func (f *fakeBookingStore) requestsByID(id string) (*domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeBookingStore) CancelRequests(_ context.Context, bookingID string) ([]domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ParticipationRequest
	for _, r := range f.requests {
		if r.BookingID == bookingID && !r.Status.Terminal() {
			r.Status = domain.RequestCancelled
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePointsStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.PointsAccount
	entries  []domain.LedgerEntry
}

func newFakePointsStore() *fakePointsStore {
	return &fakePointsStore{accounts: map[string]*domain.PointsAccount{}}
}

func (f *fakePointsStore) Adjust(_ context.Context, userID string, amount int64, dir domain.AdjustDirection, reason string) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[userID]
	if !ok {
		if dir != domain.DirectionAdd {
			return nil, domain.ErrNotFound
		}
		acc = &domain.PointsAccount{UserID: userID}
		f.accounts[userID] = acc
	}
	e, err := acc.Apply(amount, dir, reason)
	if err != nil {
		return nil, err
	}
	e.ID = fmt.Sprintf("le-%d", len(f.entries)+1)
	e.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, *e)
	out := *e
	return &out, nil
}

func (f *fakePointsStore) Balance(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return acc.Balance, nil
}

func (f *fakePointsStore) History(_ context.Context, userID string, _, _ int32) ([]domain.LedgerEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePointsStore) ledgerSum(userID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, e := range f.entries {
		if e.UserID == userID {
			sum += e.Amount
		}
	}
	return sum
}

type fakeCouponStore struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
}

func newFakeCouponStore() *fakeCouponStore {
	return &fakeCouponStore{coupons: map[string]*domain.Coupon{}}
}

func (f *fakeCouponStore) Create(_ context.Context, c *domain.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	f.coupons[c.ID] = &cp
	return nil
}

func (f *fakeCouponStore) ByID(_ context.Context, id string) (*domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCouponStore) Redeem(_ context.Context, ownerID, couponID string, now time.Time) (*domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.coupons[couponID]
	if !ok || stored.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	c := *stored
	if err := c.Redeem(now); err != nil {
		return nil, err
	}
	f.coupons[couponID] = &c
	out := c
	return &out, nil
}

func (f *fakeCouponStore) ActiveByOwner(_ context.Context, ownerID string, now time.Time) ([]domain.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Coupon
	for _, c := range f.coupons {
		if c.OwnerID == ownerID && !c.IsUsed && !c.ExpiryDate.Before(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeAttendanceStore struct {
	mu      sync.Mutex
	records map[string]domain.AttendanceRecord
	stats   map[string]*domain.UserStats
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		records: map[string]domain.AttendanceRecord{},
		stats:   map[string]*domain.UserStats{},
	}
}

func (f *fakeAttendanceStore) CheckIn(_ context.Context, userID string, today time.Time) (*domain.AttendanceRecord, *domain.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	todayID := domain.AttendanceID(userID, today)
	if _, ok := f.records[todayID]; ok {
		return nil, nil, domain.ErrAlreadyCheckedIn
	}
	stats, ok := f.stats[userID]
	if !ok {
		stats = &domain.UserStats{UserID: userID}
		f.stats[userID] = stats
	}
	consecutive := 0
	if _, ok := f.records[domain.AttendanceID(userID, today.AddDate(0, 0, -1))]; ok {
		consecutive = stats.ConsecutiveAttendance
	}
	consecutive++
	rec := domain.AttendanceRecord{
		ID:              todayID,
		UserID:          userID,
		Date:            today.Format("2006-01-02"),
		PointsAwarded:   domain.StreakBonus(consecutive),
		ConsecutiveDays: consecutive,
	}
	f.records[todayID] = rec
	stats.TotalAttendance++
	stats.ConsecutiveAttendance = consecutive
	if consecutive > stats.LongestStreak {
		stats.LongestStreak = consecutive
	}
	stats.LastAttendance = time.Now().UTC()
	statsOut := *stats
	return &rec, &statsOut, nil
}

func (f *fakeAttendanceStore) Stats(_ context.Context, userID string) (*domain.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *stats
	return &out, nil
}
