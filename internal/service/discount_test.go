package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

func newDiscountEnv(t *testing.T, now time.Time) (*DiscountService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewDiscountService(&repo.DiscountRepo{DB: db})
	svc.Now = func() time.Time { return now }
	return svc, db
}

func TestDiscountApply_PercentMath(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newDiscountEnv(t, now)

	require.NoError(t, db.Create(&models.DiscountCode{
		Code:      "SUMMER10",
		Percent:   10,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}).Error)

	resp, err := svc.Apply(context.Background(), "SUMMER10", 200000)
	require.NoError(t, err)
	assert.EqualValues(t, 20000, resp.DiscountAmount)
	assert.EqualValues(t, 180000, resp.FinalAmount)
}

func TestDiscountApply_FixedAmountClampsAtZero(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newDiscountEnv(t, now)

	require.NoError(t, db.Create(&models.DiscountCode{
		Code:      "MINUS50K",
		Amount:    50000,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}).Error)

	resp, err := svc.Apply(context.Background(), "MINUS50K", 30000)
	require.NoError(t, err)
	assert.EqualValues(t, 50000, resp.DiscountAmount)
	assert.Zero(t, resp.FinalAmount)
}

func TestDiscountApply_WindowEnforced(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newDiscountEnv(t, now)

	require.NoError(t, db.Create(&models.DiscountCode{
		Code:      "FUTURE",
		Percent:   5,
		StartDate: now.Add(time.Hour),
		EndDate:   now.Add(2 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.DiscountCode{
		Code:      "PAST",
		Percent:   5,
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-time.Hour),
	}).Error)

	_, err := svc.Apply(context.Background(), "FUTURE", 100000)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Apply(context.Background(), "PAST", 100000)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDiscountApply_UnknownCode(t *testing.T) {
	t.Parallel()

	svc, _ := newDiscountEnv(t, time.Now())

	_, err := svc.Apply(context.Background(), "NOPE", 100000)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDiscountApply_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newDiscountEnv(t, time.Now())

	_, err := svc.Apply(context.Background(), "", 100000)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Apply(context.Background(), "CODE", -1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDiscountCreate_ValidatesWindow(t *testing.T) {
	t.Parallel()

	svc, _ := newDiscountEnv(t, time.Now())
	ctx := context.Background()

	_, err := svc.Create(ctx, discountReq("BAD", 10, 0, "2025-06-02T00:00:00Z", "2025-06-01T00:00:00Z"))
	require.ErrorIs(t, err, ErrValidation)

	dc, err := svc.Create(ctx, discountReq("GOOD", 10, 0, "2025-06-01T00:00:00Z", "2025-06-02T00:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "GOOD", dc.Code)

	// duplicate code
	_, err = svc.Create(ctx, discountReq("GOOD", 10, 0, "2025-06-01T00:00:00Z", "2025-06-02T00:00:00Z"))
	require.ErrorIs(t, err, ErrConflict)
}

func discountReq(code string, percent, amount float64, start, end string) transport.CreateDiscountRequest {
	return transport.CreateDiscountRequest{
		Code:      code,
		Percent:   percent,
		Amount:    amount,
		StartDate: start,
		EndDate:   end,
	}
}
