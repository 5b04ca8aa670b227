package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reembolsos/internal/model"
	"reembolsos/internal/repository"
	"reembolsos/internal/websocket"
	"reembolsos/pkg/format"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tokenAttempts bounds how many times a colliding public token is
// regenerated before the create is given up.
const tokenAttempts = 3

// --- DTOs ---

type CreateReimbursementRequest struct {
	Company         string `json:"company" binding:"required"`
	AccountNumber   string `json:"clabe" binding:"required"`
	AmountTotal     string `json:"amount_total" binding:"required"` // decimal string, commas allowed
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
	CurrentPeriod   int    `json:"current_period"`
	TotalPeriods    int    `json:"total_periods"`
	Reference       string `json:"reference"`
	RefundGraceDays int    `json:"refund_grace_days"`
	DueDate         string `json:"due_date"` // YYYY-MM-DD, optional
	CompanyLogo     string `json:"company_logo"`
}

// withDefaults fills the optional fields an operator usually leaves blank.
// Runs before Validate so the zero value never trips the >= 1 rules.
func (r CreateReimbursementRequest) withDefaults() CreateReimbursementRequest {
	if r.CurrentPeriod == 0 {
		r.CurrentPeriod = 1
	}
	if r.TotalPeriods == 0 {
		r.TotalPeriods = 1
	}
	if r.RefundGraceDays == 0 {
		r.RefundGraceDays = model.DefaultGraceDays
	}
	if r.CompanyLogo == "" {
		r.CompanyLogo = model.DefaultLogo
	}
	return r
}

// ReimbursementResponse is the admin-facing view of one record.
type ReimbursementResponse struct {
	ID              string  `json:"id"`
	PublicToken     string  `json:"public_token"`
	PublicURL       string  `json:"public_url"`
	Company         string  `json:"company"`
	AccountNumber   string  `json:"clabe"`
	MaskedAccount   string  `json:"clabe_masked"`
	AmountTotal     string  `json:"amount_total"`
	AmountFormatted string  `json:"amount_formatted"`
	AmountRefunded  string  `json:"amount_refunded"`
	Phone           string  `json:"phone"`
	Notes           string  `json:"notes"`
	CurrentPeriod   int     `json:"current_period"`
	TotalPeriods    int     `json:"total_periods"`
	Reference       string  `json:"reference"`
	RefundGraceDays int     `json:"refund_grace_days"`
	DueDate         *string `json:"due_date"`
	CompanyLogo     string  `json:"company_logo"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	DateFormatted   string  `json:"date_formatted"`
}

// PublicReimbursementResponse is what the unauthenticated payment page
// renders. The CLABE is intentionally unmasked: the visitor needs it to pay.
type PublicReimbursementResponse struct {
	Company         string `json:"company"`
	CompanyLogo     string `json:"company_logo"`
	AccountNumber   string `json:"clabe"`
	Amount          string `json:"amount"` // es-MX grouped, no currency symbol
	AmountRefunded  string `json:"amount_refunded"`
	CurrentPeriod   int    `json:"current_period"`
	TotalPeriods    int    `json:"total_periods"`
	CreatedAt       string `json:"created_at"` // DD/MM/YYYY
	DueDate         string `json:"due_date,omitempty"`
	DaysRemaining   int    `json:"days_remaining"`
	Urgent          bool   `json:"urgent"` // 3 days or fewer left
	Reference       string `json:"reference"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

// --- Interface ---

type ReimbursementService interface {
	CreateReimbursement(ctx context.Context, req CreateReimbursementRequest) (ReimbursementResponse, error)
	ListReimbursements(ctx context.Context, page, limit int) ([]ReimbursementResponse, int64, error)
	GetByPublicToken(ctx context.Context, token string) (PublicReimbursementResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (ReimbursementResponse, error)
}

type reimbursementService struct {
	repo          repository.ReimbursementRepository
	txManager     repository.TransactionManager
	hub           *websocket.Hub
	publicBaseURL string
}

func NewReimbursementService(
	repo repository.ReimbursementRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	publicBaseURL string,
) ReimbursementService {
	return &reimbursementService{
		repo:          repo,
		txManager:     txManager,
		hub:           hub,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// --- Implementation ---

func (s *reimbursementService) CreateReimbursement(ctx context.Context, req CreateReimbursementRequest) (ReimbursementResponse, error) {
	req = req.withDefaults()
	if err := Validate(req); err != nil {
		return ReimbursementResponse{}, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(req.AmountTotal, ",", ""))
	if err != nil {
		return ReimbursementResponse{}, &ValidationError{Field: "amount_total", Reason: "El monto debe ser un número válido (ej. 1234.56)."}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return ReimbursementResponse{}, &ValidationError{Field: "due_date", Reason: "La fecha límite debe tener el formato AAAA-MM-DD."}
		}
		dueDate = &parsed
	}

	rec := &model.Reimbursement{
		Company:         strings.TrimSpace(req.Company),
		AccountNumber:   req.AccountNumber,
		AmountTotal:     amount,
		AmountRefunded:  decimal.Zero,
		Phone:           req.Phone,
		Notes:           req.Notes,
		CurrentPeriod:   req.CurrentPeriod,
		TotalPeriods:    req.TotalPeriods,
		Reference:       req.Reference,
		RefundGraceDays: req.RefundGraceDays,
		DueDate:         dueDate,
		CompanyLogo:     req.CompanyLogo,
		Status:          model.StatusPending,
	}

	// Token collisions are close to impossible but the unique index makes
	// them loud; regenerate a bounded number of times.
	for attempt := 0; ; attempt++ {
		rec.PublicToken = NewPublicToken()
		err = s.repo.Create(ctx, rec)
		if err == nil {
			break
		}
		if err != repository.ErrDuplicateToken || attempt == tokenAttempts-1 {
			return ReimbursementResponse{}, fmt.Errorf("failed to persist reimbursement: %w", err)
		}
	}

	resp := s.toResponse(rec)
	s.hub.Publish(websocket.EventCreated, resp)
	return resp, nil
}

func (s *reimbursementService) ListReimbursements(ctx context.Context, page, limit int) ([]ReimbursementResponse, int64, error) {
	records, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reimbursements: %w", err)
	}

	responses := make([]ReimbursementResponse, 0, len(records))
	for i := range records {
		responses = append(responses, s.toResponse(&records[i]))
	}
	return responses, total, nil
}

func (s *reimbursementService) GetByPublicToken(ctx context.Context, token string) (PublicReimbursementResponse, error) {
	rec, err := s.repo.FindByPublicToken(ctx, token)
	if err != nil {
		return PublicReimbursementResponse{}, err
	}
	return buildPublicResponse(rec, time.Now()), nil
}

func (s *reimbursementService) UpdateStatus(ctx context.Context, id, status string) (ReimbursementResponse, error) {
	if !model.ValidStatus(status) {
		return ReimbursementResponse{}, &ValidationError{Field: "status", Reason: "El estado debe ser pendiente, completado o rechazado."}
	}

	recID, err := uuid.Parse(id)
	if err != nil {
		return ReimbursementResponse{}, &ValidationError{Field: "id", Reason: "Identificador inválido."}
	}

	// Update and read-back in one transaction so the returned record
	// reflects this write. The write itself stays last-write-wins.
	var rec *model.Reimbursement
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateStatus(txCtx, recID, status); err != nil {
			return err
		}
		rec, err = s.repo.FindByID(txCtx, recID)
		return err
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return ReimbursementResponse{}, err
		}
		return ReimbursementResponse{}, fmt.Errorf("failed to update status: %w", err)
	}

	resp := s.toResponse(rec)
	s.hub.Publish(websocket.EventStatusUpdated, resp)
	return resp, nil
}

// --- Mapping ---

func (s *reimbursementService) toResponse(rec *model.Reimbursement) ReimbursementResponse {
	var dueDate *string
	if rec.DueDate != nil {
		d := format.Date(*rec.DueDate)
		dueDate = &d
	}
	return ReimbursementResponse{
		ID:              rec.ID.String(),
		PublicToken:     rec.PublicToken,
		PublicURL:       s.publicBaseURL + "/reembolso/" + rec.PublicToken,
		Company:         rec.Company,
		AccountNumber:   rec.AccountNumber,
		MaskedAccount:   format.MaskAccount(rec.AccountNumber),
		AmountTotal:     rec.AmountTotal.StringFixed(2),
		AmountFormatted: format.Currency(rec.AmountTotal),
		AmountRefunded:  rec.AmountRefunded.StringFixed(2),
		Phone:           rec.Phone,
		Notes:           rec.Notes,
		CurrentPeriod:   rec.CurrentPeriod,
		TotalPeriods:    rec.TotalPeriods,
		Reference:       rec.Reference,
		RefundGraceDays: rec.RefundGraceDays,
		DueDate:         dueDate,
		CompanyLogo:     rec.CompanyLogo,
		Status:          rec.Status,
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
		DateFormatted:   format.Date(rec.CreatedAt),
	}
}

// buildPublicResponse derives every display field the payment page needs.
// Days remaining is recomputed from the wall clock on every call, never
// stored.
func buildPublicResponse(rec *model.Reimbursement, now time.Time) PublicReimbursementResponse {
	days := DaysRemaining(rec.CreatedAt, rec.RefundGraceDays, rec.DueDate, now)

	resp := PublicReimbursementResponse{
		Company:        rec.Company,
		CompanyLogo:    rec.CompanyLogo,
		AccountNumber:  rec.AccountNumber,
		Amount:         format.Amount(rec.AmountTotal),
		AmountRefunded: format.Amount(rec.AmountRefunded),
		CurrentPeriod:  rec.CurrentPeriod,
		TotalPeriods:   rec.TotalPeriods,
		CreatedAt:      format.Date(rec.CreatedAt),
		DaysRemaining:  days,
		Urgent:         days <= urgentThresholdDays,
		Reference:      rec.Reference,
		Notes:          rec.Notes,
		Status:         rec.Status,
	}
	if rec.CompanyLogo == "" {
		resp.CompanyLogo = model.DefaultLogo
	}
	if rec.DueDate != nil {
		resp.DueDate = format.Date(*rec.DueDate)
	}
	return resp
}
