package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
)

// ValidationError lists the required contact fields that were blank. It is
// the only submission error a caller can fix themselves.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

type SubmitInput struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

// Signer produces the signed assertion for the sheets token exchange.
type Signer interface {
	Sign(now time.Time) (string, error)
}

// SheetsAPI is the slice of the sheets client the orchestrator needs.
type SheetsAPI interface {
	ExchangeToken(ctx context.Context, assertion string) (string, error)
	AppendRow(ctx context.Context, accessToken, spreadsheetID, rangeRef string, row []string) error
}

type SubmissionServiceInterface interface {
	Submit(ctx context.Context, in SubmitInput) (*domain.ContactSubmission, error)
	List() ([]domain.ContactSubmission, error)
	ListPaged(page repository.PageRequest) (repository.PageResult[domain.ContactSubmission], error)
	Delete(id string) error
}

// SubmissionService coordinates the contact-form dual write: the Postgres
// insert must succeed, the sheets mirror is best effort. A lost sync never
// loses the submission and never changes the caller-visible outcome.
type SubmissionService struct {
	repo          repository.SubmissionRepository
	signer        Signer
	sheets        SheetsAPI
	spreadsheetID string
	rangeRef      string
	logger        *slog.Logger
	now           func() time.Time
}

func NewSubmissionService(
	repo repository.SubmissionRepository,
	signer Signer,
	sheets SheetsAPI,
	spreadsheetID, rangeRef string,
	logger *slog.Logger,
) *SubmissionService {
	return &SubmissionService{
		repo:          repo,
		signer:        signer,
		sheets:        sheets,
		spreadsheetID: spreadsheetID,
		rangeRef:      rangeRef,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit validates, persists, then mirrors. Validation and persistence
// failures are the caller's outcome; everything after the insert commits is
// swallowed here and only logged.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*domain.ContactSubmission, error) {
	if missing := repository.MissingSubmissionFields(in.Name, in.Email, in.Message); len(missing) > 0 {
		observability.RecordSubmissionEvent(ctx, "rejected")
		return nil, &ValidationError{Missing: missing}
	}

	sub := &domain.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := s.repo.Insert(sub); err != nil {
		observability.RecordSubmissionEvent(ctx, "persist_failed")
		return nil, fmt.Errorf("persist submission: %w", err)
	}
	observability.RecordSubmissionEvent(ctx, "persisted")

	// The record is durable; the response is already decided. The sync leg
	// must not be cut short by the caller hanging up, so it runs on a
	// context detached from request cancellation.
	s.syncToSheets(context.WithoutCancel(ctx), sub)

	return sub, nil
}

// syncToSheets runs sign -> exchange -> append -> mark-synced. Any failure
// leaves google_sheets_synced=false for a later reconciliation pass.
func (s *SubmissionService) syncToSheets(ctx context.Context, sub *domain.ContactSubmission) {
	if s.signer == nil || s.sheets == nil {
		observability.RecordSheetsSyncEvent(ctx, "disabled", "skipped")
		return
	}

	assertion, err := s.signer.Sign(s.now())
	if err != nil {
		s.logSyncFailure(ctx, sub, "sign", err)
		return
	}

	accessToken, err := s.sheets.ExchangeToken(ctx, assertion)
	if err != nil {
		s.logSyncFailure(ctx, sub, "token_exchange", err)
		return
	}

	phone := ""
	if sub.Phone != nil {
		phone = *sub.Phone
	}
	// Timestamp is taken at append time, not copied from the stored row.
	row := []string{sub.Name, sub.Email, phone, sub.Message, s.now().UTC().Format(time.RFC3339)}
	if err := s.sheets.AppendRow(ctx, accessToken, s.spreadsheetID, s.rangeRef, row); err != nil {
		s.logSyncFailure(ctx, sub, "append", err)
		return
	}

	if err := s.repo.MarkSynced(sub.ID); err != nil {
		// The mirror row landed but the flag update failed; a resync pass
		// would append a duplicate row, so log loudly.
		s.logSyncFailure(ctx, sub, "mark_synced", err)
		return
	}
	sub.GoogleSheetsSynced = true
	observability.RecordSheetsSyncEvent(ctx, "success", "success")
	s.logger.InfoContext(ctx, "submission mirrored to sheets", "submission_id", sub.ID)
}

func (s *SubmissionService) logSyncFailure(ctx context.Context, sub *domain.ContactSubmission, stage string, err error) {
	observability.RecordSheetsSyncEvent(ctx, stage, "error")
	s.logger.WarnContext(ctx, "sheets sync failed, submission kept unsynced",
		"submission_id", sub.ID,
		"stage", stage,
		"error", err,
	)
}

func (s *SubmissionService) List() ([]domain.ContactSubmission, error) {
	return s.repo.ListAll()
}

func (s *SubmissionService) ListPaged(page repository.PageRequest) (repository.PageResult[domain.ContactSubmission], error) {
	return s.repo.ListPaged(page)
}

func (s *SubmissionService) Delete(id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return repository.ErrSubmissionNotFound
	}
	return s.repo.Delete(parsed)
}
