package service

import (
	"context"
	"sort"

	"nova-commerce/internal/domain"
	"nova-commerce/internal/repository"
)

// RecentLimit is the size of the dashboard "recent" projections.
const RecentLimit = 5

// StatsService computes the dashboard aggregates.
type StatsService interface {
	Dashboard(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	stats repository.StatsRepository
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(stats repository.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

// Dashboard returns entity totals and the recent-5 projections. The two
// user variants are merged and re-sorted by creation time before
// truncation.
func (s *statsService) Dashboard(ctx context.Context) (*domain.Stats, error) {
	products, err := s.stats.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.stats.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	recentProducts, err := s.stats.RecentProducts(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	recentAccountUsers, err := s.stats.RecentAccountUsers(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	recentDirectoryUsers, err := s.stats.RecentDirectoryUsers(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	recentUsers := append(recentAccountUsers, recentDirectoryUsers...)
	sort.SliceStable(recentUsers, func(i, j int) bool {
		return recentUsers[i].CreatedAt.After(recentUsers[j].CreatedAt)
	})
	if len(recentUsers) > RecentLimit {
		recentUsers = recentUsers[:RecentLimit]
	}

	recentOrders, err := s.stats.RecentOrders(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		Totals: domain.StatsTotals{
			Products: products,
			Users:    users,
			Orders:   orders,
		},
		Highlights: domain.StatsHighlights{
			RecentProducts: recentProducts,
			RecentUsers:    recentUsers,
			RecentOrders:   recentOrders,
		},
	}, nil
}
