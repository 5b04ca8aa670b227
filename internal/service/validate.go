package service

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// ValidationError identifies the first invalid field of a candidate record.
// The reason is user-facing and is shown verbatim next to the form field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var (
	clabeRegex  = regexp.MustCompile(`^\d{18}$`)
	amountRegex = regexp.MustCompile(`^(\d+)(\.\d{1,2})?$`)
)

// maxLogoBytes caps uploaded logos at 2 MiB (decoded size for data URIs).
const maxLogoBytes = 2 << 20

// Validate checks a creation request in a fixed order and stops at the first
// failure, so the operator corrects one field at a time.
func Validate(req CreateReimbursementRequest) error {
	if strings.TrimSpace(req.Company) == "" {
		return &ValidationError{Field: "company", Reason: "El nombre de la empresa es requerido."}
	}
	if !clabeRegex.MatchString(req.AccountNumber) {
		return &ValidationError{Field: "clabe", Reason: "La CLABE debe tener 18 dígitos numéricos."}
	}
	if !amountRegex.MatchString(strings.ReplaceAll(req.AmountTotal, ",", "")) {
		return &ValidationError{Field: "amount_total", Reason: "El monto debe ser un número válido (ej. 1234.56)."}
	}
	if req.CurrentPeriod < 1 {
		return &ValidationError{Field: "current_period", Reason: "El periodo actual debe ser al menos 1."}
	}
	if req.TotalPeriods < 1 {
		return &ValidationError{Field: "total_periods", Reason: "El total de periodos debe ser al menos 1."}
	}
	if req.RefundGraceDays < 1 {
		return &ValidationError{Field: "refund_grace_days", Reason: "Los días de reembolso deben ser al menos 1."}
	}
	if err := validateLogo(req.CompanyLogo); err != nil {
		return err
	}
	return nil
}

// validateLogo accepts an empty value (placeholder is used), an http(s) URL,
// or an image data URI whose decoded payload stays under 2 MiB.
func validateLogo(logo string) error {
	if logo == "" {
		return nil
	}
	if strings.HasPrefix(logo, "http://") || strings.HasPrefix(logo, "https://") || strings.HasPrefix(logo, "/") {
		return nil
	}
	if !strings.HasPrefix(logo, "data:image/") {
		return &ValidationError{Field: "company_logo", Reason: "El logo debe ser una imagen (URL o data URI)."}
	}
	idx := strings.Index(logo, ";base64,")
	if idx < 0 {
		return &ValidationError{Field: "company_logo", Reason: "El logo debe estar codificado en base64."}
	}
	payload := logo[idx+len(";base64,"):]
	if base64.StdEncoding.DecodedLen(len(payload)) > maxLogoBytes {
		return &ValidationError{Field: "company_logo", Reason: "El logo no debe exceder 2 MB."}
	}
	return nil
}
