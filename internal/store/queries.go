package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/bizlens/internal/notify"
)

// Refresh operations

// InsertRefresh records a completed refresh.
func (s *Store) InsertRefresh(r *Refresh) error {
	query := `
		INSERT INTO refreshes
		(id, generation, file_name, file_size, source, generated_at, risk_average, breaches, stockout_alerts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		r.ID,
		int64(r.Generation),
		r.FileName,
		r.FileSize,
		r.Source,
		r.GeneratedAt.Format(time.RFC3339),
		r.RiskAverage,
		r.Breaches,
		r.StockoutAlerts,
	)
	if err != nil {
		return wrapErr(fmt.Sprintf("insert refresh %s", r.ID), err)
	}
	return nil
}

// ListRefreshes returns all refreshes, oldest first.
func (s *Store) ListRefreshes() ([]*Refresh, error) {
	query := `
		SELECT id, generation, file_name, file_size, source, generated_at, risk_average, breaches, stockout_alerts
		FROM refreshes
		ORDER BY generation
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapErr("list refreshes", err)
	}
	defer rows.Close()

	var refreshes []*Refresh
	for rows.Next() {
		var r Refresh
		var generation int64
		var generatedAt string

		err := rows.Scan(
			&r.ID,
			&generation,
			&r.FileName,
			&r.FileSize,
			&r.Source,
			&generatedAt,
			&r.RiskAverage,
			&r.Breaches,
			&r.StockoutAlerts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refresh row: %w", err)
		}
		r.Generation = uint64(generation)

		r.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse generated_at for refresh %s: %w", r.ID, err)
		}

		refreshes = append(refreshes, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refreshes: %w", err)
	}

	return refreshes, nil
}

// Notification operations

// InsertNotification stores n, linked to refreshID when it is not empty.
func (s *Store) InsertNotification(refreshID string, n notify.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (refresh_id, severity, message, created_at)
		VALUES (?, ?, ?, ?)
	`

	ref := sql.NullString{String: refreshID, Valid: refreshID != ""}
	result, err := s.db.Exec(query, ref, string(n.Severity), n.Message, n.At.Format(time.RFC3339))
	if err != nil {
		return 0, wrapErr("insert notification", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get notification ID: %w", err)
	}
	return id, nil
}

// ListNotifications returns the most recent notifications, newest first.
// A limit of zero or less returns all of them.
func (s *Store) ListNotifications(limit int) ([]*NotificationRecord, error) {
	query := `
		SELECT id, refresh_id, severity, message, created_at
		FROM notifications
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr("list notifications", err)
	}
	defer rows.Close()

	var records []*NotificationRecord
	for rows.Next() {
		var rec NotificationRecord
		var ref sql.NullString
		var severity, createdAt string

		if err := rows.Scan(&rec.ID, &ref, &severity, &rec.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		rec.RefreshID = ref.String
		rec.Severity = notify.Severity(severity)

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for notification %d: %w", rec.ID, err)
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return records, nil
}

// CountNotifications returns the number of stored notifications of the
// given severity.
func (s *Store) CountNotifications(severity notify.Severity) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM notifications WHERE severity = ?", string(severity)).Scan(&count)
	if err != nil {
		return 0, wrapErr("count notifications", err)
	}
	return count, nil
}

// Notify stores n without a refresh link. Store errors are logged, not
// returned, so that a history failure never blocks a toast.
func (s *Store) Notify(n notify.Notification) {
	if _, err := s.InsertNotification("", n); err != nil {
		s.log.Warnw("failed to record notification", "error", err)
	}
}

var _ notify.Sink = (*Store)(nil)
