package analytics

import "context"

// Service is a thin pass-through: analytics is aggregate reads only,
// with authorization handled at the route layer.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	return s.repo.DashboardCounts(ctx)
}

func (s *Service) TopAds(ctx context.Context, limit int) ([]AdPerformance, error) {
	return s.repo.TopAdsByCTR(ctx, limit)
}

func (s *Service) VendorRevenue(ctx context.Context, vendorID int64) (*VendorRevenue, error) {
	return s.repo.VendorRevenue(ctx, vendorID)
}
