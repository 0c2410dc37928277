package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateListing(ctx context.Context, vendorID int64, req CreateListingRequest) (*Listing, error) {
	switch PriceUnit(req.PriceUnit) {
	case PerEvent, PerHour, PerPerson:
	default:
		return nil, ErrValidation
	}
	if req.Price <= 0 {
		return nil, ErrValidation
	}

	l := &Listing{
		VendorID:    vendorID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		City:        req.City,
		Price:       req.Price,
		PriceUnit:   PriceUnit(req.PriceUnit),
		Capacity:    req.Capacity,
		Status:      ListingPending,
		Active:      true,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateListing(ctx context.Context, vendorID, listingID int64, req UpdateListingRequest) (*Listing, error) {
	l, err := s.getOwned(ctx, vendorID, listingID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrValidation
		}
		l.Price = *req.Price
	}
	if req.Capacity != nil {
		l.Capacity = *req.Capacity
	}
	if req.Active != nil {
		l.Active = *req.Active
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteListing(ctx context.Context, vendorID, listingID int64) error {
	if _, err := s.getOwned(ctx, vendorID, listingID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, listingID)
}

func (s *Service) MyListings(ctx context.Context, vendorID int64) ([]Listing, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) GetListing(ctx context.Context, id int64) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) Search(ctx context.Context, f SearchFilter) ([]Listing, int64, error) {
	return s.repo.Search(ctx, f)
}

func (s *Service) PendingListings(ctx context.Context, limit, offset int) ([]Listing, error) {
	return s.repo.ListPending(ctx, limit, offset)
}

// ApproveListing moves a pending listing to approved. Approving a
// non-pending listing is an invalid transition.
func (s *Service) ApproveListing(ctx context.Context, listingID int64) (*Listing, error) {
	return s.review(ctx, listingID, ListingApproved, "")
}

// RejectListing moves a pending listing to rejected with a reason.
func (s *Service) RejectListing(ctx context.Context, listingID int64, reason string) (*Listing, error) {
	return s.review(ctx, listingID, ListingRejected, reason)
}

func (s *Service) review(ctx context.Context, listingID int64, to ListingStatus, reason string) (*Listing, error) {
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != ListingPending {
		return nil, ErrInvalidStatusTransition
	}

	l.Status = to
	l.RejectedReason = reason
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) getOwned(ctx context.Context, vendorID, listingID int64) (*Listing, error) {
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.VendorID != vendorID {
		return nil, ErrForbidden
	}
	return l, nil
}
