package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBooking(max int) *Booking {
	return &Booking{ID: "b1", HostID: "host", Title: "run club", CapacityMax: max, Status: BookingOpen}
}

func TestAddMemberKeepsCapacityInvariant(t *testing.T) {
	b := openBooking(2)

	require.NoError(t, b.AddMember("u1"))
	assert.Equal(t, 1, b.CapacityCurrent)
	assert.Len(t, b.MemberIDs, 1)
	assert.Equal(t, BookingOpen, b.Status)

	require.NoError(t, b.AddMember("u2"))
	assert.Equal(t, 2, b.CapacityCurrent)
	assert.Equal(t, BookingFull, b.Status)

	err := b.AddMember("u3")
	assert.ErrorIs(t, err, ErrCapacityFull)
	assert.Equal(t, 2, b.CapacityCurrent)
	assert.Len(t, b.MemberIDs, 2)
}

func TestAddMemberIsIdempotentPerUser(t *testing.T) {
	b := openBooking(3)
	require.NoError(t, b.AddMember("u1"))
	require.NoError(t, b.AddMember("u1"))
	assert.Equal(t, 1, b.CapacityCurrent)
}

func TestRemoveMemberRevertsFullToOpen(t *testing.T) {
	b := openBooking(2)
	require.NoError(t, b.AddMember("u1"))
	require.NoError(t, b.AddMember("u2"))
	require.Equal(t, BookingFull, b.Status)

	require.NoError(t, b.RemoveMember("u2"))
	assert.Equal(t, 1, b.CapacityCurrent)
	assert.Equal(t, BookingOpen, b.Status)
	assert.False(t, b.IsMember("u2"))
}

func TestHostCannotWithdraw(t *testing.T) {
	b := openBooking(2)
	require.NoError(t, b.AddMember("host"))

	err := b.RemoveMember("host")
	assert.ErrorIs(t, err, ErrHostCannotWithdraw)
	assert.Equal(t, 1, b.CapacityCurrent)
}

func TestRemoveMemberRequiresMembership(t *testing.T) {
	b := openBooking(2)
	assert.ErrorIs(t, b.RemoveMember("stranger"), ErrNotParticipant)
}

func TestCancelIsHostOnlyAndTerminal(t *testing.T) {
	b := openBooking(2)

	assert.ErrorIs(t, b.Cancel("stranger", "nope"), ErrNotHost)

	require.NoError(t, b.Cancel("host", "rain"))
	assert.Equal(t, BookingCancelled, b.Status)
	assert.Equal(t, "rain", b.CancelReason)

	// Duplicate cancel is a visible failure, not a silent success.
	assert.ErrorIs(t, b.Cancel("host", "again"), ErrBookingCancelled)

	assert.ErrorIs(t, b.AddMember("u1"), ErrBookingCancelled)
}

func TestRequestTransitions(t *testing.T) {
	r := &ParticipationRequest{ID: "r1", Status: RequestPending}
	require.NoError(t, r.Approve())
	assert.Equal(t, RequestApproved, r.Status)
	assert.ErrorIs(t, r.Approve(), ErrRequestNotPending)
	assert.ErrorIs(t, r.Reject(), ErrRequestNotPending)

	r2 := &ParticipationRequest{ID: "r2", Status: RequestPending}
	require.NoError(t, r2.Reject())
	assert.Equal(t, RequestRejected, r2.Status)
	assert.True(t, r2.Status.Terminal())
	assert.False(t, RequestApproved.Terminal())
}
