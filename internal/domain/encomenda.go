package domain

import (
	"context"
	"time"
)

// Encomenda is a package-delivery record. The recipient name is the identity
// key: unique across live records and immutable after creation.
type Encomenda struct {
	ID                int64
	Name              string
	House             string
	PostalCode        string
	Address           string
	SmallPackageCount int
	PackageLabel      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EncomendaFields holds the mutable fields of a record, everything except the
// name. Update replaces all of them.
type EncomendaFields struct {
	House             string
	PostalCode        string
	Address           string
	SmallPackageCount int
	PackageLabel      string
}

// EncomendaStore is the durable record store keyed uniquely by recipient name.
// Uniqueness is enforced by the storage engine, not by check-then-insert.
type EncomendaStore interface {
	// Insert persists a new record. Returns ECONFLICT if the name already
	// exists; no partial write occurs on conflict.
	Insert(ctx context.Context, e *Encomenda) error

	// FindByName does an exact-match lookup. Returns ENOTFOUND on absence.
	FindByName(ctx context.Context, name string) (*Encomenda, error)

	// Update replaces all non-identity fields of the named record and returns
	// the updated row. Returns ENOTFOUND if no record with that name exists.
	Update(ctx context.Context, name string, fields EncomendaFields) (*Encomenda, error)

	// ListAllOrderedByName returns every record sorted ascending by name.
	ListAllOrderedByName(ctx context.Context) ([]Encomenda, error)

	// DeleteByName removes the named record and reports how many rows were
	// affected (0 or 1), so callers can distinguish not-found from removed.
	DeleteByName(ctx context.Context, name string) (int64, error)
}

// EncomendaView is the public projection of a record returned to clients.
// Storage-internal fields (id, timestamps) never leak through it.
type EncomendaView struct {
	Name              string `json:"name"`
	House             string `json:"house"`
	PostalCode        string `json:"postalCode"`
	Address           string `json:"address"`
	SmallPackageCount int    `json:"smallPackageCount"`
	PackageLabel      string `json:"packageLabel"`
}

// NewEncomendaView projects a record into its public view.
func NewEncomendaView(e *Encomenda) EncomendaView {
	return EncomendaView{
		Name:              e.Name,
		House:             e.House,
		PostalCode:        e.PostalCode,
		Address:           e.Address,
		SmallPackageCount: e.SmallPackageCount,
		PackageLabel:      e.PackageLabel,
	}
}
