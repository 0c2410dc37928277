package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"evorgs/internal/database"
	"evorgs/internal/middleware"
)

type stubJWT struct{}

func (stubJWT) GenerateToken(principalID int64, role string) (string, error) {
	return "stub-token", nil
}

func setupAuth(t *testing.T) (*Service, Repository, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Vendor{}, &Admin{}, &OTPCode{}))
	repo := NewRepository(db)
	return NewService(repo, stubJWT{}, nil, "test-pepper", nil), repo, db
}

func TestRegisterUser(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:    "Bob@Example.com",
		Password: "secret-password",
		Name:     "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.NotEqual(t, "secret-password", u.PasswordHash)
	assert.False(t, u.EmailVerified)

	// Same address with different casing is still taken.
	_, err = svc.RegisterUser(ctx, RegisterUserRequest{
		Email:    "bob@example.com",
		Password: "another-password",
		Name:     "Bob",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterVendor(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.RegisterVendor(ctx, RegisterVendorRequest{
		Email:        "v@example.com",
		Password:     "secret-password",
		BusinessName: "Lakeside Farmhouse",
		Type:         "bakery",
	})
	assert.ErrorIs(t, err, ErrValidation)

	v, err := svc.RegisterVendor(ctx, RegisterVendorRequest{
		Email:        "v@example.com",
		Password:     "secret-password",
		BusinessName: "Lakeside Farmhouse",
		Type:         "farmhouse",
	})
	require.NoError(t, err)
	assert.Equal(t, VendorPending, v.Status)
}

func TestLoginUser(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:    "bob@example.com",
		Password: "secret-password",
		Name:     "Bob",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, middleware.RoleUser, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, middleware.RoleUser, "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.Login(ctx, middleware.RoleUser, "bob@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "stub-token", res.Token)
	assert.Equal(t, middleware.RoleUser, res.Role)
	assert.False(t, res.Pending)
}

func TestLoginVendorStatuses(t *testing.T) {
	svc, _, db := setupAuth(t)
	ctx := context.Background()

	v, err := svc.RegisterVendor(ctx, RegisterVendorRequest{
		Email:        "v@example.com",
		Password:     "secret-password",
		BusinessName: "Lakeside Farmhouse",
		Type:         "farmhouse",
	})
	require.NoError(t, err)

	// Pending vendors log in flagged.
	res, err := svc.Login(ctx, middleware.RoleVendor, "v@example.com", "secret-password")
	require.NoError(t, err)
	assert.True(t, res.Pending)

	// Vendor moderation lives in the admin surface; flip the row directly.
	require.NoError(t, db.Model(&Vendor{}).Where("id = ?", v.ID).Update("status", VendorBlocked).Error)

	_, err = svc.Login(ctx, middleware.RoleVendor, "v@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrVendorNotApproved)
}

func seedOTP(t *testing.T, svc *Service, repo Repository, role, email, code string, expiresAt time.Time) *OTPCode {
	t.Helper()
	row := &OTPCode{
		Role:      role,
		Email:     email,
		CodeHash:  svc.hashOTP(code),
		ExpiresAt: expiresAt,
	}
	require.NoError(t, repo.UpsertOTP(context.Background(), row))
	return row
}

func TestVerifyOTP(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &User{Email: "bob@example.com", Name: "Bob"}))
	seedOTP(t, svc, repo, middleware.RoleUser, "bob@example.com", "123456", time.Now().Add(otpTTL))

	err := svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	require.NoError(t, svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "123456"))

	u, err := repo.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)

	// The code is single-use.
	err = svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	ctx := context.Background()

	seedOTP(t, svc, repo, middleware.RoleUser, "bob@example.com", "123456", time.Now().Add(-time.Minute))

	err := svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyOTP_AttemptLimit(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	ctx := context.Background()

	seedOTP(t, svc, repo, middleware.RoleUser, "bob@example.com", "123456", time.Now().Add(otpTTL))

	for i := 0; i < otpMaxAttempts; i++ {
		err := svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "000000")
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	// Even the right code is refused once the budget is spent.
	err := svc.VerifyOTP(ctx, middleware.RoleUser, "bob@example.com", "123456")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestGetUserEmail(t *testing.T) {
	svc, repo, _ := setupAuth(t)
	ctx := context.Background()

	u := &User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, repo.CreateUser(ctx, u))

	email, err := svc.GetUserEmail(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)

	_, err = svc.GetUserEmail(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
