package dashboard

import (
	"fmt"

	"assetdesk/internal/repository"
	"assetdesk/pkg/models"
)

type DashboardRepository interface {
	GetStats() (*models.DashboardStats, error)
	GetRecentActivity(limit int) ([]models.ActivityEntry, error)
}

type dashboardRepositoryImpl struct {
	repository *repository.Repository
}

func NewDashboardRepository(r *repository.Repository) DashboardRepository {
	return &dashboardRepositoryImpl{repository: r}
}

const statsQuery = `
SELECT
  (SELECT COUNT(*) FROM assets) AS total_assets,
  (SELECT COUNT(*) FROM assets WHERE LOWER(status) = 'available') AS available_assets,
  (SELECT COUNT(*) FROM assets WHERE LOWER(status) IN ('borrowed', 'checked_out')) AS borrowed_assets,
  (SELECT COUNT(*) FROM assets WHERE LOWER(status) IN ('maintenance', 'under_maintenance')) AS under_maintenance,
  (SELECT COUNT(*)
     FROM borrowing_requests
    WHERE status IN ('ISSUED', 'BORROWED', 'APPROVED')
      AND expected_return IS NOT NULL
      AND expected_return < CURRENT_DATE
      AND return_date IS NULL) AS overdue_returns
`

func (r *dashboardRepositoryImpl) GetStats() (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if _, err := r.repository.GoquDBWrapper.ScanStruct(&stats, statsQuery); err != nil {
		return nil, fmt.Errorf("unable to select dashboard stats: %w", err)
	}

	return &stats, nil
}

// recentActivityQuery merges borrowing request lifecycle events with asset
// registrations into one newest-first feed. The event time of a request is
// its most recent lifecycle stamp.
const recentActivityQuery = `
SELECT event_time, date, action, asset, actor FROM (
  SELECT
    COALESCE(r.return_date, r.issued_at, r.approved_at, r.request_date) AS event_time,
    TO_CHAR(COALESCE(r.return_date, r.issued_at, r.approved_at, r.request_date), 'YYYY-MM-DD HH24:MI') AS date,
    CASE
      WHEN r.status LIKE 'RETURNED%' THEN 'Asset Returned'
      WHEN r.status = 'ISSUED' THEN 'Asset Borrowed'
      WHEN r.status = 'APPROVED' THEN 'Request Approved'
      ELSE 'Request Created'
    END AS action,
    a.asset_tag AS asset,
    r.borrower_name AS actor
  FROM borrowing_requests r
  LEFT JOIN assets a ON r.asset_id = a.id
  WHERE COALESCE(r.return_date, r.issued_at, r.approved_at, r.request_date) IS NOT NULL

  UNION ALL

  SELECT
    a.created_at AS event_time,
    TO_CHAR(a.created_at, 'YYYY-MM-DD HH24:MI') AS date,
    'Asset Added: ' || a.name AS action,
    a.asset_tag AS asset,
    'System' AS actor
  FROM assets a
) recent
ORDER BY event_time DESC
LIMIT $1
`

func (r *dashboardRepositoryImpl) GetRecentActivity(limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := r.repository.GoquDBWrapper.ScanStructs(&entries, recentActivityQuery, limit); err != nil {
		return nil, fmt.Errorf("unable to select recent activity: %w", err)
	}

	return entries, nil
}
