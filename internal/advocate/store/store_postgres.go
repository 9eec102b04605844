package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/lib/pq"

	"advocatehub/internal/advocate/models"
	"advocatehub/internal/search"
	"advocatehub/pkg/platform/sentinel"
	"advocatehub/pkg/platform/strings"
	"advocatehub/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

const selectColumns = `id, first_name, last_name, city, degree, specialties, years_of_experience, phone_number`

// PostgresStore reads advocates from PostgreSQL. Search reads are read-only.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed advocate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunInTx runs fn in a transaction. Store calls made with the context fn
// receives join it.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.Run(ctx, s.db, fn)
}

// EnsureSchema creates the advocates table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := tx.QuerierFor(ctx, s.db).ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure advocates schema: %w", err)
	}
	return nil
}

// List returns one page of advocates matching plan in insertion order.
func (s *PostgresStore) List(ctx context.Context, plan search.Plan, offset, limit int) ([]models.Advocate, error) {
	where, args, err := BuildWhere(plan)
	if err != nil {
		return nil, fmt.Errorf("build advocate filter: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM advocates %s ORDER BY id LIMIT $%d OFFSET $%d`,
		selectColumns, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := tx.QuerierFor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list advocates: %w", err)
	}
	defer rows.Close()

	advocates := make([]models.Advocate, 0, limit)
	for rows.Next() {
		var a models.Advocate
		if err := rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.City,
			&a.Degree,
			pq.Array(&a.Specialties),
			&a.YearsOfExperience,
			&a.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("scan advocate: %w", err)
		}
		if a.Specialties == nil {
			a.Specialties = []string{}
		}
		advocates = append(advocates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advocates: %w", err)
	}
	return advocates, nil
}

// Count returns how many advocates match plan, ignoring paging.
func (s *PostgresStore) Count(ctx context.Context, plan search.Plan) (int, error) {
	where, args, err := BuildWhere(plan)
	if err != nil {
		return 0, fmt.Errorf("build advocate filter: %w", err)
	}
	var total int
	if err := tx.QuerierFor(ctx, s.db).QueryRowContext(ctx, `SELECT count(*) FROM advocates `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count advocates: %w", err)
	}
	return total, nil
}

// Insert stores a new advocate and returns it with its assigned ID.
// Specialties are trimmed and deduplicated.
func (s *PostgresStore) Insert(ctx context.Context, a models.Advocate) (models.Advocate, error) {
	specialties := strings.DedupeAndTrim(a.Specialties)
	query := `
		INSERT INTO advocates (first_name, last_name, city, degree, specialties, years_of_experience, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := tx.QuerierFor(ctx, s.db).QueryRowContext(ctx, query,
		a.FirstName, a.LastName, a.City, a.Degree, pq.Array(specialties), a.YearsOfExperience, a.PhoneNumber,
	).Scan(&a.ID)
	if err != nil {
		return models.Advocate{}, fmt.Errorf("insert advocate: %w", err)
	}
	a.Specialties = specialties
	return a, nil
}

// Ping reports whether the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}
