package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/events"
	"github.com/hoanglamvn01/cosmetic_shop/internal/hash"
	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/mail"
	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/otp"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/tokens"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

const (
	accessTokenTTL = 24 * time.Hour

	defaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

type AuthService struct {
	Users  *repo.UserRepo
	OTP    otp.Store
	Mailer mail.Sender

	Producer  *events.Producer
	JWTSecret []byte

	GoogleClientID     string
	GoogleTokenInfoURL string
	HTTPClient         *http.Client
}

type LoginResult struct {
	AccessToken string
	Expires     time.Time
	IsAdmin     bool
	User        *models.User
}

func NewAuthService(users *repo.UserRepo, store otp.Store, mailer mail.Sender, producer *events.Producer, jwtSecret []byte, googleClientID string) *AuthService {
	return &AuthService{
		Users:              users,
		OTP:                store,
		Mailer:             mailer,
		Producer:           producer,
		JWTSecret:          jwtSecret,
		GoogleClientID:     googleClientID,
		GoogleTokenInfoURL: defaultGoogleTokenInfoURL,
		HTTPClient:         &http.Client{Timeout: 5 * time.Second},
	}
}

// Register creates an unverified account and emails a verification OTP.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	if _, err := s.Users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: pwHash,
		FullName:     req.FullName,
		Role:         models.RoleCustomer,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, otp.PurposeVerify, user.Email); err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}

	return user, nil
}

// RequestOTP issues a fresh code for either account verification or
// password reset.
func (s *AuthService) RequestOTP(ctx context.Context, email, purpose string) error {
	if purpose != otp.PurposeVerify && purpose != otp.PurposeReset {
		return fmt.Errorf("%w: unknown otp purpose %q", ErrValidation, purpose)
	}

	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return err
	}

	return s.sendOTP(ctx, purpose, email)
}

// VerifyOTP confirms a registration code and activates the account.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if err := s.checkOTP(ctx, otp.PurposeVerify, email, code); err != nil {
		return err
	}

	if err := s.Users.MarkVerified(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return err
	}

	return s.OTP.Del(ctx, otp.PurposeVerify, email)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !user.IsVerified {
		return nil, fmt.Errorf("%w: email not verified", ErrUnauthorized)
	}

	return s.issueToken(user)
}

// ResetPassword consumes a reset OTP and overwrites the password.
func (s *AuthService) ResetPassword(ctx context.Context, req transport.ResetPasswordRequest) error {
	if req.NewPassword == "" {
		return fmt.Errorf("%w: new password required", ErrValidation)
	}

	if err := s.checkOTP(ctx, otp.PurposeReset, req.Email, req.Code); err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.Users.UpdatePassword(ctx, req.Email, pwHash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no account for %s", ErrNotFound, req.Email)
		}
		return err
	}

	return s.OTP.Del(ctx, otp.PurposeReset, req.Email)
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// GoogleLogin exchanges a Google ID token for a session. The token is
// validated against the tokeninfo endpoint and must be issued for this
// application's client ID.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: id_token required", ErrValidation)
	}

	info, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.GetByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first sign-in: provision a verified account with an unusable
		// random password
		pwHash, err := hash.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}
		user = &models.User{
			Email:        info.Email,
			PasswordHash: pwHash,
			FullName:     info.Name,
			Role:         models.RoleCustomer,
			GoogleID:     info.Sub,
			IsVerified:   true,
			CreatedAt:    time.Now(),
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if user.GoogleID == "" {
			if err := s.Users.AttachGoogleID(ctx, user.ID, info.Sub); err != nil {
				return nil, err
			}
		}
	}

	return s.issueToken(user)
}

func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	u := s.GoogleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: google rejected the token", ErrUnauthorized)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google tokeninfo: decode: %w", err)
	}

	if info.Aud != s.GoogleClientID {
		return nil, fmt.Errorf("%w: token issued for another client", ErrUnauthorized)
	}
	if info.EmailVerified != "true" {
		return nil, fmt.Errorf("%w: google email not verified", ErrUnauthorized)
	}
	return &info, nil
}

func (s *AuthService) issueToken(user *models.User) (*LoginResult, error) {
	exp := time.Now().Add(accessTokenTTL)
	token, err := tokens.NewAccessToken(user.ID, user.Role, exp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		Expires:     exp,
		IsAdmin:     user.Role == models.RoleAdmin,
		User:        user,
	}, nil
}

func (s *AuthService) sendOTP(ctx context.Context, purpose, email string) error {
	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	if err := s.OTP.Set(ctx, purpose, email, code); err != nil {
		return err
	}
	if err := s.Mailer.SendOTP(email, code); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func (s *AuthService) checkOTP(ctx context.Context, purpose, email, code string) error {
	stored, err := s.OTP.Get(ctx, purpose, email)
	if errors.Is(err, otp.ErrNotFound) {
		return fmt.Errorf("%w: code expired or never requested", ErrValidation)
	}
	if err != nil {
		return err
	}
	if stored != code || code == "" {
		return fmt.Errorf("%w: invalid code", ErrValidation)
	}
	return nil
}
