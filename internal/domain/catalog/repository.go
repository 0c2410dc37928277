package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id int64) (*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id int64) error
	ListByVendor(ctx context.Context, vendorID int64) ([]Listing, error)
	Search(ctx context.Context, f SearchFilter) ([]Listing, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]Listing, error)
}

// SearchFilter narrows the public listing search. Zero values mean
// "no constraint".
type SearchFilter struct {
	Type     string
	City     string
	MaxPrice float64
	Limit    int
	Offset   int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Listing, error) {
	var l Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Listing{}, id).Error
}

func (r *repository) ListByVendor(ctx context.Context, vendorID int64) ([]Listing, error) {
	var out []Listing
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) Search(ctx context.Context, f SearchFilter) ([]Listing, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("status = ? AND active = ?", ListingApproved, true)

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var out []Listing
	if err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) ListPending(ctx context.Context, limit, offset int) ([]Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Listing
	err := r.db.WithContext(ctx).
		Where("status = ?", ListingPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
