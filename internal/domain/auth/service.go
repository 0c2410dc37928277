package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"evorgs/internal/middleware"
	"evorgs/internal/notification"
)

const (
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

type jwtService interface {
	GenerateToken(principalID int64, role string) (string, error)
}

// Service contains all business logic for authentication across the
// three principal kinds.
type Service struct {
	repo   Repository
	jwt    jwtService
	notifs *notification.Service
	pepper string
	logger *zap.Logger
}

func NewService(repo Repository, jwt jwtService, notifs *notification.Service, pepper string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, jwt: jwt, notifs: notifs, pepper: pepper, logger: logger}
}

type LoginResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Pending bool   `json:"pending,omitempty"` // vendor awaiting approval
}

func (s *Service) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.requestOTPAsync(u.Email, middleware.RoleUser)
	return u, nil
}

func (s *Service) RegisterVendor(ctx context.Context, req RegisterVendorRequest) (*Vendor, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetVendorByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	switch VendorType(req.Type) {
	case VendorVenue, VendorFarmhouse, VendorCatering, VendorPhotography:
	default:
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	v := &Vendor{
		Email:        email,
		PasswordHash: string(hash),
		BusinessName: req.BusinessName,
		Type:         VendorType(req.Type),
		Status:       VendorPending,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		return nil, err
	}

	s.requestOTPAsync(v.Email, middleware.RoleVendor)
	return v, nil
}

// Login authenticates against the identity table matching role.
// Blocked and rejected vendors cannot log in; pending vendors can,
// but the result is flagged so clients can show the review banner.
func (s *Service) Login(ctx context.Context, role, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	var (
		id      int64
		name    string
		hash    string
		pending bool
	)

	switch role {
	case middleware.RoleUser:
		u, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		id, name, hash = u.ID, u.Name, u.PasswordHash
	case middleware.RoleVendor:
		v, err := s.repo.GetVendorByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		if v.Status == VendorBlocked || v.Status == VendorRejected {
			return nil, ErrVendorNotApproved
		}
		id, name, hash = v.ID, v.BusinessName, v.PasswordHash
		pending = v.Status == VendorPending
	case middleware.RoleAdmin:
		a, err := s.repo.GetAdminByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		id, name, hash = a.ID, a.Name, a.PasswordHash
	default:
		return nil, ErrValidation
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(id, role)
	if err != nil {
		return nil, err
	}

	if role == middleware.RoleAdmin {
		_ = s.repo.TouchAdminLogin(ctx, id, time.Now())
	}

	return &LoginResult{
		Token:   token,
		Role:    role,
		ID:      id,
		Name:    name,
		Email:   email,
		Pending: pending,
	}, nil
}

// RequestOTP issues a fresh verification code for the identity and
// hands it to the notification boundary. Delivery failure is a soft
// error: the code stays valid and the caller still gets success.
func (s *Service) RequestOTP(ctx context.Context, role, email string) error {
	email = normalizeEmail(email)

	code, err := generateOTP()
	if err != nil {
		return err
	}

	row := &OTPCode{
		Role:      role,
		Email:     email,
		CodeHash:  s.hashOTP(code),
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.repo.UpsertOTP(ctx, row); err != nil {
		return err
	}

	if s.notifs != nil && !s.notifs.SendOTP(ctx, email, code) {
		s.logger.Warn("otp delivery failed", zap.String("email", email), zap.String("role", role))
	}
	return nil
}

func (s *Service) VerifyOTP(ctx context.Context, role, email, code string) error {
	email = normalizeEmail(email)

	row, err := s.repo.GetOTP(ctx, role, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if time.Now().After(row.ExpiresAt) {
		return ErrCodeExpired
	}
	if row.Attempts >= otpMaxAttempts {
		return ErrTooManyAttempts
	}
	if s.hashOTP(code) != row.CodeHash {
		_ = s.repo.BumpOTPAttempts(ctx, row.ID)
		return ErrInvalidCode
	}

	if err := s.repo.MarkEmailVerified(ctx, role, email); err != nil {
		return err
	}
	return s.repo.DeleteOTP(ctx, row.ID)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserEmail is the directory lookup other modules use when
// sending notifications.
func (s *Service) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

func (s *Service) GetVendor(ctx context.Context, id int64) (*Vendor, error) {
	v, err := s.repo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (s *Service) GetAdmin(ctx context.Context, id int64) (*Admin, error) {
	a, err := s.repo.GetAdminByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *Service) requestOTPAsync(email, role string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.RequestOTP(ctx, role, email); err != nil {
			s.logger.Warn("otp request failed", zap.String("email", email), zap.Error(err))
		}
	}()
}

func (s *Service) hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code + s.pepper))
	return hex.EncodeToString(sum[:])
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loginErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
