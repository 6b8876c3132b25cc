package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdesouza/encomendas/internal/domain"
)

// uniqueViolation is the SQLSTATE Postgres reports when a unique constraint
// rejects a write.
const uniqueViolation = "23505"

// EncomendaStore implements domain.EncomendaStore on a pgx connection pool.
// Uniqueness of the name is enforced by the encomendas_name_key constraint, so
// concurrent creates cannot race past an application-level existence check.
type EncomendaStore struct {
	pool *pgxpool.Pool
}

// Compile-time check to ensure EncomendaStore implements domain.EncomendaStore.
var _ domain.EncomendaStore = (*EncomendaStore)(nil)

// NewEncomendaStore creates a new EncomendaStore instance.
func NewEncomendaStore(pool *pgxpool.Pool) *EncomendaStore {
	return &EncomendaStore{pool: pool}
}

const insertEncomenda = `
INSERT INTO encomendas (name, house, postal_code, address, small_package_count, package_label)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

// Insert persists a new record. A unique violation on the name maps to a
// conflict; the statement is atomic, so nothing is written on failure.
func (s *EncomendaStore) Insert(ctx context.Context, e *domain.Encomenda) error {
	const op = "encomenda.insert"

	err := s.pool.QueryRow(ctx, insertEncomenda,
		e.Name, e.House, e.PostalCode, e.Address, e.SmallPackageCount, e.PackageLabel,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return mapInsertError(err, op, e.Name)
	}

	return nil
}

// mapInsertError converts a raw insert failure into a domain error.
func mapInsertError(err error, op, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.Conflict(op, fmt.Sprintf("Encomenda de '%s' já existente, verifique!", name))
	}
	return domain.Storage(err, op, "Erro ao gravar a encomenda.")
}

const selectEncomendaByName = `
SELECT id, name, house, postal_code, address, small_package_count, package_label, created_at, updated_at
FROM encomendas
WHERE name = $1`

// FindByName does an exact-match lookup by recipient name.
func (s *EncomendaStore) FindByName(ctx context.Context, name string) (*domain.Encomenda, error) {
	const op = "encomenda.find_by_name"

	e, err := scanEncomenda(s.pool.QueryRow(ctx, selectEncomendaByName, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "Encomenda não encontrada")
		}
		return nil, domain.Storage(err, op, "Erro ao consultar o cadastro.")
	}

	return e, nil
}

const updateEncomenda = `
UPDATE encomendas
SET house = $2, postal_code = $3, address = $4, small_package_count = $5, package_label = $6, updated_at = now()
WHERE name = $1
RETURNING id, name, house, postal_code, address, small_package_count, package_label, created_at, updated_at`

// Update replaces all non-identity fields of the named record in a single
// statement. The name stays immutable through this path.
func (s *EncomendaStore) Update(ctx context.Context, name string, fields domain.EncomendaFields) (*domain.Encomenda, error) {
	const op = "encomenda.update"

	e, err := scanEncomenda(s.pool.QueryRow(ctx, updateEncomenda,
		name, fields.House, fields.PostalCode, fields.Address, fields.SmallPackageCount, fields.PackageLabel,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "Encomenda não encontrada")
		}
		return nil, domain.Storage(err, op, "Erro ao atualizar a encomenda")
	}

	return e, nil
}

const listEncomendas = `
SELECT id, name, house, postal_code, address, small_package_count, package_label, created_at, updated_at
FROM encomendas
ORDER BY name ASC`

// ListAllOrderedByName returns every record sorted ascending by name.
func (s *EncomendaStore) ListAllOrderedByName(ctx context.Context) ([]domain.Encomenda, error) {
	const op = "encomenda.list"

	rows, err := s.pool.Query(ctx, listEncomendas)
	if err != nil {
		return nil, domain.Storage(err, op, "Erro ao consultar o cadastro.")
	}
	defer rows.Close()

	var result []domain.Encomenda
	for rows.Next() {
		var e domain.Encomenda
		if err := rows.Scan(
			&e.ID, &e.Name, &e.House, &e.PostalCode, &e.Address,
			&e.SmallPackageCount, &e.PackageLabel, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, domain.Storage(err, op, "Erro ao consultar o cadastro.")
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage(err, op, "Erro ao consultar o cadastro.")
	}

	return result, nil
}

const deleteEncomenda = `DELETE FROM encomendas WHERE name = $1`

// DeleteByName removes the named record and reports how many rows were
// affected, so callers can distinguish not-found from removed.
func (s *EncomendaStore) DeleteByName(ctx context.Context, name string) (int64, error) {
	const op = "encomenda.delete"

	tag, err := s.pool.Exec(ctx, deleteEncomenda, name)
	if err != nil {
		return 0, domain.Storage(err, op, "Erro ao remover a encomenda.")
	}

	return tag.RowsAffected(), nil
}

// scanEncomenda reads a full record row.
func scanEncomenda(row pgx.Row) (*domain.Encomenda, error) {
	var e domain.Encomenda
	if err := row.Scan(
		&e.ID, &e.Name, &e.House, &e.PostalCode, &e.Address,
		&e.SmallPackageCount, &e.PackageLabel, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
