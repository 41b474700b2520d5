package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

func seedAddresses(t *testing.T, db *gorm.DB, userID uint, n int) []models.Address {
	t.Helper()

	addrs := make([]models.Address, 0, n)
	for i := 0; i < n; i++ {
		addr := models.Address{
			UserID:    userID,
			Recipient: "R",
			Phone:     "0900",
			Line:      "line",
			Province:  "Hanoi",
		}
		require.NoError(t, db.Create(&addr).Error)
		addrs = append(addrs, addr)
	}
	return addrs
}

func countDefaults(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&n).Error)
	return n
}

func TestSetDefault_OnlyOneDefaultPerUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	r := &AddressRepo{DB: db}
	ctx := context.Background()

	addrs := seedAddresses(t, db, 1, 3)

	require.NoError(t, r.SetDefault(ctx, 1, addrs[0].ID))
	assert.EqualValues(t, 1, countDefaults(t, db, 1))

	require.NoError(t, r.SetDefault(ctx, 1, addrs[2].ID))
	assert.EqualValues(t, 1, countDefaults(t, db, 1))

	var got models.Address
	require.NoError(t, db.First(&got, addrs[2].ID).Error)
	assert.True(t, got.IsDefault)
	got = models.Address{}
	require.NoError(t, db.First(&got, addrs[0].ID).Error)
	assert.False(t, got.IsDefault)
}

func TestSetDefault_OtherUsersUnaffected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	r := &AddressRepo{DB: db}
	ctx := context.Background()

	mine := seedAddresses(t, db, 1, 1)
	theirs := seedAddresses(t, db, 2, 1)

	require.NoError(t, r.SetDefault(ctx, 1, mine[0].ID))
	require.NoError(t, r.SetDefault(ctx, 2, theirs[0].ID))

	assert.EqualValues(t, 1, countDefaults(t, db, 1))
	assert.EqualValues(t, 1, countDefaults(t, db, 2))
}

func TestSetDefault_WrongUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	r := &AddressRepo{DB: db}

	addrs := seedAddresses(t, db, 1, 1)

	err := r.SetDefault(context.Background(), 2, addrs[0].ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateAddress_DefaultDisplacesPrevious(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	r := &AddressRepo{DB: db}
	ctx := context.Background()

	first := models.Address{UserID: 1, Recipient: "R", Phone: "0900", Line: "a", Province: "Hanoi", IsDefault: true}
	require.NoError(t, r.Create(ctx, &first))

	second := models.Address{UserID: 1, Recipient: "R", Phone: "0900", Line: "b", Province: "Hanoi", IsDefault: true}
	require.NoError(t, r.Create(ctx, &second))

	assert.EqualValues(t, 1, countDefaults(t, db, 1))

	var got models.Address
	require.NoError(t, db.First(&got, second.ID).Error)
	assert.True(t, got.IsDefault)
}
