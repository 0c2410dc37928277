package ads

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"evorgs/internal/pkg/validator"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateAd(ctx context.Context, vendorID int64, req CreateAdRequest) (*Ad, error) {
	switch EntityType(req.EntityType) {
	case EntityService:
		if req.ListingID == nil {
			return nil, ErrValidation
		}
	case EntityExternal:
		if req.TargetURL == "" {
			return nil, ErrValidation
		}
	default:
		return nil, ErrValidation
	}
	if req.PricePerDay < 0 {
		return nil, ErrValidation
	}

	a := &Ad{
		VendorID:    vendorID,
		Title:       req.Title,
		EntityType:  EntityType(req.EntityType),
		ListingID:   req.ListingID,
		ImageURL:    req.ImageURL,
		TargetURL:   req.TargetURL,
		PricePerDay: req.PricePerDay,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAd(ctx context.Context, id int64) (*Ad, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) VendorAds(ctx context.Context, vendorID int64) ([]Ad, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) AdsByStatus(ctx context.Context, status Status, limit, offset int) ([]Ad, error) {
	return s.repo.ListByStatus(ctx, status, limit, offset)
}

// ApproveAd moves a pending ad to approved; approving anything else
// is an invalid transition.
func (s *Service) ApproveAd(ctx context.Context, adID int64) (*Ad, error) {
	a, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	a.Status = StatusApproved
	a.RejectedReason = ""
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) RejectAd(ctx context.Context, adID int64, reason string) (*Ad, error) {
	a, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	a.Status = StatusRejected
	a.RejectedReason = reason
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ActivateAd puts an approved ad on air for the given window. Active
// ads participate in slot conflict checks.
func (s *Service) ActivateAd(ctx context.Context, adID int64, start, end *time.Time) (*Ad, error) {
	a, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusApproved && a.Status != StatusExpired {
		return nil, ErrInvalidStatusTransition
	}
	a.Status = StatusActive
	a.StartDate = start
	a.EndDate = end
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ExpireAd(ctx context.Context, adID int64) (*Ad, error) {
	a, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusActive {
		return nil, ErrInvalidStatusTransition
	}
	a.Status = StatusExpired
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RecordImpression and RecordClick are public, fire-and-forget
// counters; failures are logged, never surfaced.
func (s *Service) RecordImpression(ctx context.Context, adID int64) {
	if err := s.repo.IncrementImpressions(ctx, adID); err != nil {
		s.logger.Warn("impression increment failed", zap.Int64("ad_id", adID), zap.Error(err))
	}
}

func (s *Service) RecordClick(ctx context.Context, adID int64) {
	if err := s.repo.IncrementClicks(ctx, adID); err != nil {
		s.logger.Warn("click increment failed", zap.Int64("ad_id", adID), zap.Error(err))
	}
}

// UpdateAdTimeSlots replaces the ad's slots wholesale: old slots are
// deleted, the new set inserted, never merged.
func (s *Service) UpdateAdTimeSlots(ctx context.Context, vendorID, adID int64, reqs []TimeSlotInput) ([]TimeSlot, error) {
	a, err := s.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if vendorID != 0 && a.VendorID != vendorID {
		return nil, ErrForbidden
	}

	slots := make([]TimeSlot, 0, len(reqs))
	for _, in := range reqs {
		if err := ValidateSlotInput(in); err != nil {
			return nil, err
		}
		slots = append(slots, TimeSlot{
			AdID:      adID,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Weekdays:  in.Weekdays,
			Priority:  in.Priority,
			Active:    true,
		})
	}

	if err := s.repo.ReplaceTimeSlots(ctx, adID, slots); err != nil {
		return nil, err
	}
	return s.repo.GetTimeSlots(ctx, adID)
}

func (s *Service) AdTimeSlots(ctx context.Context, adID int64) ([]TimeSlot, error) {
	if _, err := s.GetAd(ctx, adID); err != nil {
		return nil, err
	}
	return s.repo.GetTimeSlots(ctx, adID)
}

// ValidateSlotInput enforces the slot invariants: HH:MM times with
// start < end, weekdays within 0..6, priority within 1..5.
func ValidateSlotInput(in TimeSlotInput) error {
	if !validator.ValidTimeOfDay(in.StartTime) || !validator.ValidTimeOfDay(in.EndTime) {
		return ErrValidation
	}
	if in.StartTime >= in.EndTime {
		return ErrValidation
	}
	if len(in.Weekdays) == 0 {
		return ErrValidation
	}
	for _, d := range in.Weekdays {
		if d < 0 || d > 6 {
			return ErrValidation
		}
	}
	if in.Priority < 1 || in.Priority > 5 {
		return ErrValidation
	}
	return nil
}
