package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enum constants
const (
	StatusPending   = "pendiente"
	StatusCompleted = "completado"
	StatusRejected  = "rechazado"
)

// DefaultGraceDays is the refund window applied when a record carries no
// explicit due date.
const DefaultGraceDays = 6

// DefaultLogo is the placeholder asset served when no company logo was uploaded.
const DefaultLogo = "/static/logo.svg"

// ValidStatus reports whether s is one of the three reimbursement states.
// Transitions between states are deliberately unrestricted; only the value
// itself is checked.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusRejected
}

// Reimbursement represents one payment-back request. The record is created
// once with status "pendiente" and mutated only through status updates.
type Reimbursement struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PublicToken     string          `gorm:"column:public_token;type:varchar(8);uniqueIndex;not null" json:"public_token"` // sole lookup key for the public page
	Company         string          `gorm:"type:varchar(120);not null" json:"company"`
	AccountNumber   string          `gorm:"column:clabe;type:char(18);not null" json:"clabe"` // 18-digit CLABE interbancaria
	AmountTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_total"`
	AmountRefunded  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount_refunded"`
	Phone           string          `gorm:"type:varchar(30)" json:"phone"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CurrentPeriod   int             `gorm:"not null;default:1" json:"current_period"`
	TotalPeriods    int             `gorm:"not null;default:1" json:"total_periods"`
	Reference       string          `gorm:"type:varchar(120)" json:"reference"`
	RefundGraceDays int             `gorm:"not null;default:6" json:"refund_grace_days"`
	DueDate         *time.Time      `gorm:"type:date" json:"due_date"` // overrides grace-day computation when set
	CompanyLogo     string          `gorm:"type:text" json:"company_logo"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pendiente';index" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName keeps the collection name the public links were minted against.
func (Reimbursement) TableName() string {
	return "reembolsos"
}
