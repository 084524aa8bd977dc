package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
	"github.com/ldmoraes/contas_app/internal/utils/accounting"
)

// dreService manages income-statement postings and the monthly snapshots
// derived from them.
type dreService struct {
	BaseService
	dreRepo          portsrepo.DRERepositoryFacade
	chartAccountRepo portsrepo.ChartAccountReader
}

// NewDREService creates a new DREService.
func NewDREService(dreRepo portsrepo.DRERepositoryFacade, chartAccountRepo portsrepo.ChartAccountReader) portssvc.DRESvcFacade {
	return &dreService{
		dreRepo:          dreRepo,
		chartAccountRepo: chartAccountRepo,
	}
}

// Ensure dreService implements the portssvc.DRESvcFacade interface
var _ portssvc.DRESvcFacade = (*dreService)(nil)

// PostLedgerEntry validates and persists a posting against a chart account.
func (s *dreService) PostLedgerEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", apperrors.ErrValidation)
	}
	entryDate, err := dto.ParseDate(req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date", apperrors.ErrValidation)
	}

	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: chart account %s does not exist", apperrors.ErrReferentialIntegrity, req.AccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: chart account %s is inactive", apperrors.ErrValidation, account.Code)
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   req.AccountID,
		EntryDate:   entryDate,
		Amount:      req.Amount,
		Description: req.Description,
		DocumentRef: req.DocumentRef,
		PayableID:   req.PayableID,
		InvoiceID:   req.InvoiceID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.dreRepo.SaveLedgerEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "failed to save ledger entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "ledger entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_code", account.Code),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// GetLedgerEntryByID retrieves a posting by its ID.
func (s *dreService) GetLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return s.dreRepo.FindLedgerEntryByID(ctx, entryID)
}

// ListLedgerEntries retrieves a page of postings matching the filter.
func (s *dreService) ListLedgerEntries(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, string, error) {
	return s.dreRepo.ListLedgerEntries(ctx, filter)
}

// DeleteLedgerEntry removes a posting. The month's snapshot is stale until
// recomputed.
func (s *dreService) DeleteLedgerEntry(ctx context.Context, entryID string) error {
	return s.dreRepo.DeleteLedgerEntry(ctx, entryID)
}

// RecomputeSnapshot aggregates the month's postings per chart-account group,
// derives the income-statement lines and upserts the (year, month) row.
func (s *dreService) RecomputeSnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	if year < 1900 || year > 2200 {
		return nil, fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, year)
	}

	totals, err := s.dreRepo.SumGroupTotals(ctx, year, month)
	if err != nil {
		s.LogError(ctx, err, "failed to sum group totals",
			slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := accounting.DeriveSnapshot(totals)
	snapshot.SnapshotID = uuid.NewString()
	snapshot.Year = year
	snapshot.Month = month
	snapshot.CreatedAt = now
	snapshot.LastUpdatedAt = now

	if err := s.dreRepo.UpsertMonthlySnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "failed to upsert monthly snapshot",
			slog.Int("year", year), slog.Int("month", month))
		return nil, err
	}

	// The upsert keeps the original snapshot_id and created_at on conflict.
	stored, err := s.dreRepo.FindMonthlySnapshot(ctx, year, month)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "monthly snapshot recomputed",
		slog.Int("year", year), slog.Int("month", month),
		slog.String("net_profit", stored.NetProfit.String()))
	return stored, nil
}

// GetSnapshot retrieves the snapshot for one month.
func (s *dreService) GetSnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error) {
	return s.dreRepo.FindMonthlySnapshot(ctx, year, month)
}

// ListSnapshots retrieves every snapshot of a year ordered by month.
func (s *dreService) ListSnapshots(ctx context.Context, year int) ([]domain.MonthlySnapshot, error) {
	return s.dreRepo.ListMonthlySnapshots(ctx, year)
}
