package auth

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	CreateVendor(ctx context.Context, v *Vendor) error
	GetVendorByID(ctx context.Context, id int64) (*Vendor, error)
	GetVendorByEmail(ctx context.Context, email string) (*Vendor, error)

	GetAdminByID(ctx context.Context, id int64) (*Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	TouchAdminLogin(ctx context.Context, id int64, at time.Time) error

	MarkEmailVerified(ctx context.Context, role, email string) error

	UpsertOTP(ctx context.Context, code *OTPCode) error
	GetOTP(ctx context.Context, role, email string) (*OTPCode, error)
	BumpOTPAttempts(ctx context.Context, id int64) error
	DeleteOTP(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateVendor(ctx context.Context, v *Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetVendorByID(ctx context.Context, id int64) (*Vendor, error) {
	var v Vendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) GetVendorByEmail(ctx context.Context, email string) (*Vendor, error) {
	var v Vendor
	if err := r.db.WithContext(ctx).First(&v, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) GetAdminByID(ctx context.Context, id int64) (*Admin, error) {
	var a Admin
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	if err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) TouchAdminLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *repository) MarkEmailVerified(ctx context.Context, role, email string) error {
	switch role {
	case "vendor":
		return r.db.WithContext(ctx).
			Model(&Vendor{}).
			Where("email = ?", email).
			Update("email_verified", true).Error
	default:
		return r.db.WithContext(ctx).
			Model(&User{}).
			Where("email = ?", email).
			Update("email_verified", true).Error
	}
}

func (r *repository) UpsertOTP(ctx context.Context, code *OTPCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ? AND email = ?", code.Role, code.Email).
			Delete(&OTPCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *repository) GetOTP(ctx context.Context, role, email string) (*OTPCode, error) {
	var c OTPCode
	if err := r.db.WithContext(ctx).
		First(&c, "role = ? AND email = ?", role, email).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) BumpOTPAttempts(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&OTPCode{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *repository) DeleteOTP(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&OTPCode{}, id).Error
}
