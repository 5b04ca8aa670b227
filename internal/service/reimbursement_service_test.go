package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"reembolsos/internal/model"
	"reembolsos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory stand-in for the postgres-backed repository.
type fakeRepo struct {
	records    []model.Reimbursement
	failCreate int // fail this many creates with ErrDuplicateToken first
}

func (f *fakeRepo) Create(_ context.Context, r *model.Reimbursement) error {
	if f.failCreate > 0 {
		f.failCreate--
		return repository.ErrDuplicateToken
	}
	for _, existing := range f.records {
		if existing.PublicToken == r.PublicToken {
			return repository.ErrDuplicateToken
		}
	}
	r.ID = uuid.New()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeRepo) List(_ context.Context, page, limit int) ([]model.Reimbursement, int64, error) {
	sorted := make([]model.Reimbursement, len(f.records))
	copy(sorted, f.records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	start := (page - 1) * limit
	if start >= len(sorted) {
		return []model.Reimbursement{}, int64(len(f.records)), nil
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], int64(len(f.records)), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reimbursement, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) FindByPublicToken(_ context.Context, token string) (*model.Reimbursement, error) {
	for i := range f.records {
		if f.records[i].PublicToken == token {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeRepo) ReimbursementService {
	return NewReimbursementService(repo, fakeTxManager{}, nil, "http://localhost:8080")
}

func TestCreateReimbursement(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	rec, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "100000001000000010",
		AmountTotal:   "1500.50",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, rec.Status)
	assert.Len(t, rec.PublicToken, 8)
	assert.Equal(t, "http://localhost:8080/reembolso/"+rec.PublicToken, rec.PublicURL)
	assert.Equal(t, "1500.50", rec.AmountTotal)
	assert.Equal(t, "$1,500.50", rec.AmountFormatted)
	assert.Equal(t, "1000...0010", rec.MaskedAccount)
	assert.Equal(t, 1, rec.CurrentPeriod)
	assert.Equal(t, 1, rec.TotalPeriods)
	assert.Equal(t, model.DefaultGraceDays, rec.RefundGraceDays)
	assert.Equal(t, model.DefaultLogo, rec.CompanyLogo)
}

func TestCreateReimbursementTokensAreDistinct(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		rec, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
			Company:       fmt.Sprintf("Empresa %d", i),
			AccountNumber: "100000001000000010",
			AmountTotal:   "100",
		})
		require.NoError(t, err)
		assert.False(t, seen[rec.PublicToken], "token %q issued twice", rec.PublicToken)
		seen[rec.PublicToken] = true
	}
}

func TestCreateReimbursementRetriesOnTokenCollision(t *testing.T) {
	repo := &fakeRepo{failCreate: 2}
	svc := newTestService(repo)

	rec, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "100000001000000010",
		AmountTotal:   "100",
	})
	require.NoError(t, err)
	assert.Len(t, rec.PublicToken, 8)
	assert.Len(t, repo.records, 1)
}

func TestCreateReimbursementGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &fakeRepo{failCreate: tokenAttempts}
	svc := newTestService(repo)

	_, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "100000001000000010",
		AmountTotal:   "100",
	})
	require.Error(t, err)
	assert.Empty(t, repo.records)
}

func TestCreateReimbursementRejectsInvalidInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "123", // not a CLABE
		AmountTotal:   "100",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "clabe", verr.Field)
	assert.Empty(t, repo.records, "invalid input must not be persisted")
}

func TestListReimbursementsPagination(t *testing.T) {
	repo := &fakeRepo{}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		repo.records = append(repo.records, model.Reimbursement{
			ID:            uuid.New(),
			PublicToken:   fmt.Sprintf("tok%05d", i),
			Company:       fmt.Sprintf("Empresa %d", i),
			AccountNumber: "100000001000000010",
			AmountTotal:   decimal.NewFromInt(int64(i + 1)),
			Status:        model.StatusPending,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}
	svc := newTestService(repo)

	page1, total, err := svc.ListReimbursements(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "Empresa 24", page1[0].Company, "newest first")

	page3, total, err := svc.ListReimbursements(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, page3, 5)

	page4, total, err := svc.ListReimbursements(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, page4, "beyond-range page is empty, not an error")
}

func TestGetByPublicToken(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "123456789012345678",
		AmountTotal:   "2500",
	})
	require.NoError(t, err)

	pub, err := svc.GetByPublicToken(context.Background(), created.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, "Acme", pub.Company)
	assert.Equal(t, "123456789012345678", pub.AccountNumber, "public page shows the full CLABE")
	assert.Equal(t, "2,500", pub.Amount)
	assert.Equal(t, model.StatusPending, pub.Status)
	assert.GreaterOrEqual(t, pub.DaysRemaining, 0)
}

func TestGetByPublicTokenNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByPublicToken(context.Background(), "missing1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateReimbursement(context.Background(), CreateReimbursementRequest{
		Company:       "Acme",
		AccountNumber: "100000001000000010",
		AmountTotal:   "100",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)

	// Idempotent: applying the same status again changes nothing.
	again, err := svc.UpdateStatus(context.Background(), created.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, updated, again)

	// Every transition is legal, including back to pendiente.
	back, err := svc.UpdateStatus(context.Background(), created.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, back.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), "cancelado")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), model.StatusRejected)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBuildPublicResponseUrgencyFlag(t *testing.T) {
	createdAt := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rec := &model.Reimbursement{
		Company:         "Acme",
		AccountNumber:   "100000001000000010",
		AmountTotal:     decimal.NewFromFloat(1500.50),
		AmountRefunded:  decimal.Zero,
		CurrentPeriod:   1,
		TotalPeriods:    3,
		RefundGraceDays: 6,
		Status:          model.StatusPending,
		CreatedAt:       createdAt,
	}

	early := buildPublicResponse(rec, createdAt)
	assert.Equal(t, 6, early.DaysRemaining)
	assert.False(t, early.Urgent)

	late := buildPublicResponse(rec, createdAt.AddDate(0, 0, 4))
	assert.Equal(t, 2, late.DaysRemaining)
	assert.True(t, late.Urgent)

	assert.Equal(t, "1,500.5", early.Amount)
	assert.Equal(t, "10/03/2026", early.CreatedAt)
	assert.Equal(t, model.DefaultLogo, early.CompanyLogo)
}
