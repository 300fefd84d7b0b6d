package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"foundly/internal/model"
)

// DashboardStats is the data behind the admin dashboard.
type DashboardStats struct {
	FoundReports  []model.FoundReport
	PendingClaims int
	TotalFound    int
	TotalUsers    int
}

// GetDashboardStats runs the four independent dashboard queries
// concurrently and joins the results.
func GetDashboardStats(ctx context.Context, db *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reports, err := ListFoundReports(ctx, db)
		if err != nil {
			return err
		}
		stats.FoundReports = reports
		return nil
	})
	g.Go(func() error {
		n, err := CountPendingClaims(ctx, db)
		if err != nil {
			return err
		}
		stats.PendingClaims = n
		return nil
	})
	g.Go(func() error {
		n, err := CountFoundReports(ctx, db)
		if err != nil {
			return err
		}
		stats.TotalFound = n
		return nil
	})
	g.Go(func() error {
		n, err := CountUsers(ctx, db)
		if err != nil {
			return err
		}
		stats.TotalUsers = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gathering dashboard stats: %w", err)
	}
	return stats, nil
}
