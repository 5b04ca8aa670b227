package repository

import (
	"context"
	"errors"

	"reembolsos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("reimbursement not found")

// ErrDuplicateToken is returned when an insert collides with an existing
// public token. The caller regenerates the token and retries.
var ErrDuplicateToken = errors.New("public token already in use")

type ReimbursementRepository interface {
	Create(ctx context.Context, r *model.Reimbursement) error
	List(ctx context.Context, page, limit int) ([]model.Reimbursement, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reimbursement, error)
	FindByPublicToken(ctx context.Context, token string) (*model.Reimbursement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type reimbursementRepository struct {
	db *gorm.DB
}

func NewReimbursementRepository(db *gorm.DB) ReimbursementRepository {
	return &reimbursementRepository{db: db}
}

func (r *reimbursementRepository) Create(ctx context.Context, rec *model.Reimbursement) error {
	if err := GetDB(ctx, r.db).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateToken
		}
		return err
	}
	return nil
}

// List returns one page ordered newest-first plus the unfiltered total count.
// A page beyond the available range yields an empty slice, not an error.
func (r *reimbursementRepository) List(ctx context.Context, page, limit int) ([]model.Reimbursement, int64, error) {
	var records []model.Reimbursement
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Reimbursement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *reimbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reimbursement, error) {
	var rec model.Reimbursement
	if err := GetDB(ctx, r.db).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByPublicToken is the only lookup the public page performs. Exact match,
// no fallback.
func (r *reimbursementRepository) FindByPublicToken(ctx context.Context, token string) (*model.Reimbursement, error) {
	var rec model.Reimbursement
	if err := GetDB(ctx, r.db).First(&rec, "public_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// UpdateStatus overwrites the status column only. Last write wins; no
// version check is performed, matching how concurrent admin edits behave.
func (r *reimbursementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := GetDB(ctx, r.db).Model(&model.Reimbursement{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
