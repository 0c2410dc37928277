package pos

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateTransaction(ctx context.Context, t *Transaction) error
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListTransactions(ctx context.Context, vendorID int64, limit, offset int) ([]Transaction, error)

	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, vendorID int64, limit, offset int) ([]Expense, error)

	Summarize(ctx context.Context, vendorID int64) (*Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTransaction(ctx context.Context, t *Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var t Transaction
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListTransactions(ctx context.Context, vendorID int64, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Transaction
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) CreateExpense(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	var e Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) UpdateExpense(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) DeleteExpense(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListExpenses(ctx context.Context, vendorID int64, limit, offset int) ([]Expense, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Expense
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("incurred_on DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) Summarize(ctx context.Context, vendorID int64) (*Summary, error) {
	s := &Summary{VendorID: vendorID}

	row := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS sales, "+
			"COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS refunds",
			KindSale, KindRefund).
		Where("vendor_id = ?", vendorID).
		Row()
	if err := row.Scan(&s.TotalSales, &s.TotalRefunds); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Model(&Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("vendor_id = ?", vendorID).
		Scan(&s.TotalExpenses).Error
	if err != nil {
		return nil, err
	}

	s.Balance = s.TotalSales - s.TotalRefunds - s.TotalExpenses
	return s, nil
}
