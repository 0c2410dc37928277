package pos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"evorgs/internal/pkg/validator"
)

// Service keeps the vendor ledger. Every read and write is scoped to
// the calling vendor; cross-vendor access is Forbidden, not NotFound,
// so vendors can tell "yours" apart from "gone".
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordTransaction(ctx context.Context, vendorID int64, req CreateTransactionRequest) (*Transaction, error) {
	t := &Transaction{
		VendorID:  vendorID,
		BookingID: req.BookingID,
		Kind:      req.Kind,
		Method:    req.Method,
		Amount:    req.Amount,
		Note:      req.Note,
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Transactions(ctx context.Context, vendorID int64, limit, offset int) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, vendorID, limit, offset)
}

func (s *Service) RecordExpense(ctx context.Context, vendorID int64, req CreateExpenseRequest) (*Expense, error) {
	if !validator.ValidDate(req.IncurredOn) {
		return nil, ErrValidation
	}
	e := &Expense{
		VendorID:    vendorID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		IncurredOn:  req.IncurredOn,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) UpdateExpense(ctx context.Context, vendorID, id int64, req UpdateExpenseRequest) (*Expense, error) {
	if !validator.ValidDate(req.IncurredOn) {
		return nil, ErrValidation
	}
	e, err := s.ownedExpense(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	e.Category = req.Category
	e.Amount = req.Amount
	e.Description = req.Description
	e.IncurredOn = req.IncurredOn
	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, vendorID, id int64) error {
	if _, err := s.ownedExpense(ctx, vendorID, id); err != nil {
		return err
	}
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) Expenses(ctx context.Context, vendorID int64, limit, offset int) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, vendorID, limit, offset)
}

func (s *Service) BalanceSummary(ctx context.Context, vendorID int64) (*Summary, error) {
	return s.repo.Summarize(ctx, vendorID)
}

func (s *Service) ownedExpense(ctx context.Context, vendorID, id int64) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if e.VendorID != vendorID {
		return nil, ErrForbidden
	}
	return e, nil
}
