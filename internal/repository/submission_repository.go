package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

var (
	ErrSubmissionNotFound = errors.New("contact submission not found")
	ErrMissingFields      = errors.New("missing required fields")
)

type SubmissionRepository interface {
	Insert(sub *domain.ContactSubmission) error
	MarkSynced(id uuid.UUID) error
	Delete(id uuid.UUID) error
	ListAll() ([]domain.ContactSubmission, error)
	ListPaged(page PageRequest) (PageResult[domain.ContactSubmission], error)
	FindByID(id uuid.UUID) (*domain.ContactSubmission, error)
}

type GormSubmissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// MissingSubmissionFields returns the required fields that are blank after
// trimming, in a stable order.
func MissingSubmissionFields(name, email, message string) []string {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(message) == "" {
		missing = append(missing, "message")
	}
	return missing
}

// Insert persists a new submission. The id and submitted_at are assigned here;
// google_sheets_synced always starts false. An optional phone is stored as
// NULL, never as an empty string.
func (r *GormSubmissionRepository) Insert(sub *domain.ContactSubmission) error {
	if missing := MissingSubmissionFields(sub.Name, sub.Email, sub.Message); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)
	if sub.Phone != nil && strings.TrimSpace(*sub.Phone) == "" {
		sub.Phone = nil
	}
	sub.GoogleSheetsSynced = false
	if err := r.db.Create(sub).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "insert", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "insert", "success")
	return nil
}

// MarkSynced flips google_sheets_synced to true for the given record. The id
// is threaded from Insert so the update can never land on a different row,
// and the flag only ever moves false -> true.
func (r *GormSubmissionRepository) MarkSynced(id uuid.UUID) error {
	res := r.db.Model(&domain.ContactSubmission{}).
		Where("id = ? AND google_sheets_synced = ?", id, false).
		Update("google_sheets_synced", true)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "mark_synced", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&domain.ContactSubmission{}).Where("id = ?", id).Count(&count).Error; err == nil && count > 0 {
			// Already synced; nothing to do.
			observability.RecordRepositoryOperation(context.Background(), "contact_submission", "mark_synced", "noop")
			return nil
		}
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "mark_synced", "not_found")
		return ErrSubmissionNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "mark_synced", "success")
	return nil
}

func (r *GormSubmissionRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&domain.ContactSubmission{}, "id = ?", id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "delete", "not_found")
		return ErrSubmissionNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "delete", "success")
	return nil
}

func (r *GormSubmissionRepository) ListAll() ([]domain.ContactSubmission, error) {
	var subs []domain.ContactSubmission
	if err := r.db.Order("submitted_at desc").Find(&subs).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "list", "success")
	return subs, nil
}

func (r *GormSubmissionRepository) ListPaged(page PageRequest) (PageResult[domain.ContactSubmission], error) {
	page = normalizePageRequest(page)
	var total int64
	if err := r.db.Model(&domain.ContactSubmission{}).Count(&total).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "list_paged", "error")
		return PageResult[domain.ContactSubmission]{}, err
	}
	var subs []domain.ContactSubmission
	err := r.db.Order("submitted_at desc").
		Offset((page.Page - 1) * page.PageSize).
		Limit(page.PageSize).
		Find(&subs).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "list_paged", "error")
		return PageResult[domain.ContactSubmission]{}, err
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "list_paged", "success")
	return PageResult[domain.ContactSubmission]{
		Items:      subs,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: calcTotalPages(total, page.PageSize),
	}, nil
}

func (r *GormSubmissionRepository) FindByID(id uuid.UUID) (*domain.ContactSubmission, error) {
	var sub domain.ContactSubmission
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "contact_submission", "find_by_id", "not_found")
			return nil, ErrSubmissionNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "contact_submission", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "contact_submission", "find_by_id", "success")
	return &sub, nil
}
