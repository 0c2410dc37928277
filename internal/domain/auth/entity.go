package auth

import "time"

// VendorStatus gates whether a vendor may list services or buy ads.
type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
	VendorBlocked  VendorStatus = "blocked"
)

// VendorType is the line of business a vendor operates in.
type VendorType string

const (
	VendorVenue       VendorType = "venue"
	VendorFarmhouse   VendorType = "farmhouse"
	VendorCatering    VendorType = "catering"
	VendorPhotography VendorType = "photography"
)

type User struct {
	ID            int64     `json:"id" gorm:"column:id;primaryKey"`
	Email         string    `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `json:"-" gorm:"column:password_hash"`
	Name          string    `json:"name" gorm:"column:name"`
	Phone         string    `json:"phone,omitempty" gorm:"column:phone"`
	EmailVerified bool      `json:"email_verified" gorm:"column:email_verified"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

type Vendor struct {
	ID             int64        `json:"id" gorm:"column:id;primaryKey"`
	Email          string       `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash   string       `json:"-" gorm:"column:password_hash"`
	BusinessName   string       `json:"business_name" gorm:"column:business_name"`
	Type           VendorType   `json:"type" gorm:"column:type"`
	Status         VendorStatus `json:"status" gorm:"column:status"`
	Phone          string       `json:"phone,omitempty" gorm:"column:phone"`
	Address        string       `json:"address,omitempty" gorm:"column:address"`
	RejectedReason string       `json:"rejected_reason,omitempty" gorm:"column:rejected_reason"`
	EmailVerified  bool         `json:"email_verified" gorm:"column:email_verified"`
	CreatedAt      time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"column:updated_at"`
}

func (Vendor) TableName() string { return "vendors" }

type Admin struct {
	ID           int64      `json:"id" gorm:"column:id;primaryKey"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash"`
	Name         string     `json:"name" gorm:"column:name"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"column:last_login_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Admin) TableName() string { return "admins" }

// OTPCode is a pending email verification code. Codes are stored
// hashed; one row per (role, email).
type OTPCode struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Role      string    `gorm:"column:role;index:idx_otp_identity"`
	Email     string    `gorm:"column:email;index:idx_otp_identity"`
	CodeHash  string    `gorm:"column:code_hash"`
	Attempts  int       `gorm:"column:attempts"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (OTPCode) TableName() string { return "email_otps" }
