package repositories

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// LedgerEntryFilter narrows ledger-entry listings to a period and/or account.
type LedgerEntryFilter struct {
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken string
}

// LedgerEntryReader defines read operations for DRE postings.
type LedgerEntryReader interface {
	FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListLedgerEntries retrieves postings ordered by entry date, returning
	// the token for the next page ("" when exhausted).
	ListLedgerEntries(ctx context.Context, filter LedgerEntryFilter) ([]domain.LedgerEntry, string, error)

	// SumGroupTotals sums posting amounts per chart-account group for the
	// given month, considering only active accounts' groups as posted.
	SumGroupTotals(ctx context.Context, year int, month int) (domain.GroupTotals, error)
}

// LedgerEntryWriter defines write operations for DRE postings.
type LedgerEntryWriter interface {
	SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error
	DeleteLedgerEntry(ctx context.Context, entryID string) error
}

// SnapshotReader defines read operations for monthly income-statement rows.
type SnapshotReader interface {
	FindMonthlySnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error)
	ListMonthlySnapshots(ctx context.Context, year int) ([]domain.MonthlySnapshot, error)
}

// SnapshotWriter defines write operations for monthly income-statement rows.
type SnapshotWriter interface {
	// SaveMonthlySnapshot inserts a snapshot, failing on a (year, month)
	// collision.
	SaveMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error

	// UpsertMonthlySnapshot inserts or, on a (year, month) collision, updates
	// the computed columns and the last-updated timestamp in place.
	UpsertMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error
}

// DRERepositoryFacade combines the ledger-entry and snapshot interfaces.
type DRERepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
	SnapshotReader
	SnapshotWriter
}
