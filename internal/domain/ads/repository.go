package ads

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Ad) error
	GetByID(ctx context.Context, id int64) (*Ad, error)
	Update(ctx context.Context, a *Ad) error
	ListByVendor(ctx context.Context, vendorID int64) ([]Ad, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Ad, error)
	IncrementImpressions(ctx context.Context, id int64) error
	IncrementClicks(ctx context.Context, id int64) error

	// ReplaceTimeSlots deletes every slot of the ad and inserts the
	// new set in one transaction. Slots are never merged.
	ReplaceTimeSlots(ctx context.Context, adID int64, slots []TimeSlot) error
	GetTimeSlots(ctx context.Context, adID int64) ([]TimeSlot, error)
	GetTimeSlot(ctx context.Context, id int64) (*TimeSlot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Ad) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Ad, error) {
	var a Ad
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Ad) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) ListByVendor(ctx context.Context, vendorID int64) ([]Ad, error) {
	var out []Ad
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Ad, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Ad
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) IncrementImpressions(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&Ad{}).
		Where("id = ?", id).
		Update("impressions", gorm.Expr("impressions + 1")).Error
}

func (r *repository) IncrementClicks(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&Ad{}).
		Where("id = ?", id).
		Update("clicks", gorm.Expr("clicks + 1")).Error
}

func (r *repository) ReplaceTimeSlots(ctx context.Context, adID int64, slots []TimeSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ad_id = ?", adID).Delete(&TimeSlot{}).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ID = 0
			slots[i].AdID = adID
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func (r *repository) GetTimeSlots(ctx context.Context, adID int64) ([]TimeSlot, error) {
	var out []TimeSlot
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) GetTimeSlot(ctx context.Context, id int64) (*TimeSlot, error) {
	var t TimeSlot
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
