package services

import (
	"context"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// DRESvcFacade manages income-statement postings and monthly snapshots.
type DRESvcFacade interface {
	PostLedgerEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)
	GetLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	ListLedgerEntries(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, string, error)
	DeleteLedgerEntry(ctx context.Context, entryID string) error

	// RecomputeSnapshot aggregates the month's ledger entries per
	// chart-account group, derives the income-statement lines and upserts the
	// (year, month) row.
	RecomputeSnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error)

	GetSnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error)
	ListSnapshots(ctx context.Context, year int) ([]domain.MonthlySnapshot, error)
}
