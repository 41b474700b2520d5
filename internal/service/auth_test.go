package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/otp"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/tokens"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

func newAuthEnv(t *testing.T) (*AuthService, *fakeMailer, *otp.MemoryStore) {
	t.Helper()

	db := newTestDB(t)
	mailer := newFakeMailer()
	store := otp.NewMemoryStore()

	svc := &AuthService{
		Users:     &repo.UserRepo{DB: db},
		OTP:       store,
		Mailer:    mailer,
		JWTSecret: []byte("test-jwt-secret"),
	}
	return svc, mailer, store
}

func TestRegister_VerifyOTP_Login(t *testing.T) {
	t.Parallel()

	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		Email:    "a@example.com",
		Password: "secret123",
		FullName: "A",
	})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.RoleCustomer, user.Role)

	code := mailer.sent["a@example.com"]
	require.Len(t, code, 6)

	// unverified accounts cannot log in
	_, err = svc.Login(ctx, "a@example.com", "secret123")
	require.ErrorIs(t, err, ErrUnauthorized)

	require.ErrorIs(t, svc.VerifyOTP(ctx, "a@example.com", "000000x"), ErrValidation)
	require.NoError(t, svc.VerifyOTP(ctx, "a@example.com", code))

	result, err := svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	assert.False(t, result.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(result.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestVerifyOTP_CodeIsSingleUse(t *testing.T) {
	t.Parallel()

	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	code := mailer.sent["a@example.com"]
	require.NoError(t, svc.VerifyOTP(ctx, "a@example.com", code))
	require.ErrorIs(t, svc.VerifyOTP(ctx, "a@example.com", code), ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "other456"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(ctx, "a@example.com", mailer.sent["a@example.com"]))

	_, err = svc.Login(ctx, "a@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequestOTP_UnknownPurposeOrUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.RequestOTP(ctx, "a@example.com", "whatever"), ErrValidation)
	require.ErrorIs(t, svc.RequestOTP(ctx, "a@example.com", otp.PurposeVerify), ErrNotFound)
}

func TestResetPassword_Flow(t *testing.T) {
	t.Parallel()

	svc, mailer, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(ctx, "a@example.com", mailer.sent["a@example.com"]))

	require.NoError(t, svc.RequestOTP(ctx, "a@example.com", otp.PurposeReset))
	code := mailer.sent["a@example.com"]

	require.NoError(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{
		Email:       "a@example.com",
		Code:        code,
		NewPassword: "newpass789",
	}))

	_, err = svc.Login(ctx, "a@example.com", "secret123")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "a@example.com", "newpass789")
	require.NoError(t, err)
}

func googleTokenInfoServer(t *testing.T, info googleTokenInfo, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			require.NoError(t, json.NewEncoder(w).Encode(info))
		}
	}))
}

func TestGoogleLogin_ProvisionsVerifiedUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthEnv(t)
	svc.GoogleClientID = "client-123"

	srv := googleTokenInfoServer(t, googleTokenInfo{
		Aud:           "client-123",
		Sub:           "google-sub-1",
		Email:         "g@example.com",
		EmailVerified: "true",
		Name:          "G User",
	}, http.StatusOK)
	defer srv.Close()

	svc.GoogleTokenInfoURL = srv.URL
	svc.HTTPClient = srv.Client()

	result, err := svc.GoogleLogin(context.Background(), "some-id-token")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	assert.True(t, result.User.IsVerified)
	assert.Equal(t, "google-sub-1", result.User.GoogleID)

	// password login with a random provisioned hash stays impossible
	_, err = svc.Login(context.Background(), "g@example.com", "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoogleLogin_WrongAudience(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthEnv(t)
	svc.GoogleClientID = "client-123"

	srv := googleTokenInfoServer(t, googleTokenInfo{
		Aud:           "someone-else",
		Email:         "g@example.com",
		EmailVerified: "true",
	}, http.StatusOK)
	defer srv.Close()

	svc.GoogleTokenInfoURL = srv.URL
	svc.HTTPClient = srv.Client()

	_, err := svc.GoogleLogin(context.Background(), "some-id-token")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoogleLogin_RejectedToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthEnv(t)

	srv := googleTokenInfoServer(t, googleTokenInfo{}, http.StatusBadRequest)
	defer srv.Close()

	svc.GoogleTokenInfoURL = srv.URL
	svc.HTTPClient = srv.Client()

	_, err := svc.GoogleLogin(context.Background(), "bad-token")
	require.ErrorIs(t, err, ErrUnauthorized)
}
