package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

const alertColumns = "id, src_ip, prediction, confidence, severity, status, user_id, created_at"

// AlertRepository implements alert.Repository on database/sql
type AlertRepository struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sql.DB, driverName string) *AlertRepository {
	return &AlertRepository{db: db, driver: driverName, now: time.Now}
}

func (r *AlertRepository) q(query string) string {
	return rebind(r.driver, query)
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	defer observe("alerts", "insert", time.Now())

	createdAt := r.now().UTC().Truncate(time.Microsecond)

	var owner sql.NullInt64
	if a.OwnerID != nil {
		owner = sql.NullInt64{Int64: *a.OwnerID, Valid: true}
	}

	query := r.q(`
		INSERT INTO alerts (src_ip, prediction, confidence, severity, status, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.SourceAddress, string(a.VerdictLabel), a.Confidence, string(a.Severity), string(a.Status), owner, formatTime(createdAt),
	).Scan(&id)
	if err != nil {
		return 0, errors.PersistenceFailure("Failed to create alert", err)
	}

	a.ID = id
	a.CreatedAt = createdAt
	return id, nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	defer observe("alerts", "select", time.Now())

	row := r.db.QueryRowContext(ctx, r.q("SELECT "+alertColumns+" FROM alerts WHERE id = ?"), id)
	a, err := scanAlert(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) ListRecent(ctx context.Context, ownerID *int64, limit int) ([]*alert.Alert, error) {
	defer observe("alerts", "select", time.Now())

	query := "SELECT " + alertColumns + " FROM alerts"
	args := []interface{}{}
	if ownerID != nil {
		query += " WHERE user_id = ?"
		args = append(args, *ownerID)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0, limit)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errors.PersistenceFailure("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.PersistenceFailure("Failed to iterate alerts", err)
	}

	return alerts, nil
}

// UpdateStatus is a single statement, so concurrent writers on the same
// row never interleave; the last write wins.
func (r *AlertRepository) UpdateStatus(ctx context.Context, id int64, status alert.Status) (*alert.Alert, error) {
	defer observe("alerts", "update", time.Now())

	row := r.db.QueryRowContext(ctx,
		r.q("UPDATE alerts SET status = ? WHERE id = ? RETURNING "+alertColumns),
		string(status), id,
	)
	a, err := scanAlert(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to update alert status", err)
	}
	return a, nil
}

func (r *AlertRepository) Aggregate(ctx context.Context, ownerID *int64) (*alert.Aggregate, error) {
	defer observe("alerts", "aggregate", time.Now())

	where := ""
	args := []interface{}{}
	if ownerID != nil {
		where = " WHERE user_id = ?"
		args = append(args, *ownerID)
	}

	agg := alert.NewAggregate()

	var latest dbTime
	err := r.db.QueryRowContext(ctx, r.q(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN prediction = 'Attack' THEN 1 ELSE 0 END), 0),
		       MAX(created_at)
		FROM alerts`+where), args...).Scan(&agg.Total, &agg.Threats, &latest)
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to count alerts", err)
	}
	if latest.Valid {
		t := latest.Time
		agg.LatestAt = &t
	}

	if err := r.countBy(ctx, "severity", where, args, func(k string, n int64) {
		agg.BySeverity[threat.Severity(k)] = n
	}); err != nil {
		return nil, err
	}
	if err := r.countBy(ctx, "status", where, args, func(k string, n int64) {
		agg.ByStatus[alert.Status(k)] = n
	}); err != nil {
		return nil, err
	}

	return agg, nil
}

func (r *AlertRepository) countBy(ctx context.Context, column, where string, args []interface{}, set func(string, int64)) error {
	rows, err := r.db.QueryContext(ctx, r.q("SELECT "+column+", COUNT(*) FROM alerts"+where+" GROUP BY "+column), args...)
	if err != nil {
		return errors.PersistenceFailure("Failed to count alerts by "+column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return errors.PersistenceFailure("Failed to scan alert counts", err)
		}
		set(key, n)
	}
	if err := rows.Err(); err != nil {
		return errors.PersistenceFailure("Failed to iterate alert counts", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(s rowScanner) (*alert.Alert, error) {
	var (
		a         alert.Alert
		label     string
		severity  string
		status    string
		owner     sql.NullInt64
		createdAt dbTime
	)
	if err := s.Scan(&a.ID, &a.SourceAddress, &label, &a.Confidence, &severity, &status, &owner, &createdAt); err != nil {
		return nil, err
	}
	a.VerdictLabel = threat.Label(label)
	a.Severity = threat.Severity(severity)
	a.Status = alert.Status(status)
	if owner.Valid {
		id := owner.Int64
		a.OwnerID = &id
	}
	a.CreatedAt = createdAt.Time
	return &a, nil
}

func observe(table, operation string, start time.Time) {
	metrics.RecordDBQuery(operation, table, time.Since(start))
}
