package service

import (
	"strings"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/pkg/validator"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest is the input of a PDV quick transaction.
type RecordTransactionRequest struct {
	Kind           model.TransactionKind `json:"kind" validate:"required,oneof=RECEITA DESPESA"`
	Amount         decimal.Decimal       `json:"amount" validate:"gt=0"`
	Description    string                `json:"description" validate:"max=255"`
	PaymentMethod  *model.PaymentMethod  `json:"payment_method" validate:"omitempty,oneof=DINHEIRO PIX CARTAO_DEBITO CARTAO_CREDITO"`
	Category       string                `json:"category" validate:"max=100"`
	StaffName      string                `json:"staff_name"`
	ClientName     string                `json:"client_name"`
	AppointmentID  *uuid.UUID            `json:"appointment_id"`
	Notes          string                `json:"notes"`
	OccurredAt     *time.Time            `json:"occurred_at"`
	IdempotencyKey string                `json:"idempotency_key" validate:"max=100"`
}

type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

const (
	tagBlank           = "blank"
	tagRequiredRevenue = "required_for_revenue"
	tagRequiredExpense = "required_for_expense"
	tagCents           = "cents"
	tagMaxAmount       = "max_amount"
)

// maxAmount is the largest value a decimal(12,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

func init() {
	validator.RegisterStructValidation(transactionRules, RecordTransactionRequest{})
}

// transactionRules holds the rules tags cannot express: amounts in whole
// cents within decimal(12,2), non-blank description, revenue needs a payment
// method and expense needs a category.
func transactionRules(sl govalidator.StructLevel) {
	req := sl.Current().Interface().(RecordTransactionRequest)

	if req.Amount.IsPositive() {
		switch {
		case !req.Amount.Equal(req.Amount.Round(2)):
			sl.ReportError(req.Amount, "amount", "Amount", tagCents, "")
		case req.Amount.GreaterThan(maxAmount):
			sl.ReportError(req.Amount, "amount", "Amount", tagMaxAmount, maxAmount.String())
		}
	}
	if strings.TrimSpace(req.Description) == "" {
		sl.ReportError(req.Description, "description", "Description", tagBlank, "")
	}
	if req.Kind == model.KindRevenue && req.PaymentMethod == nil {
		sl.ReportError(req.PaymentMethod, "payment_method", "PaymentMethod", tagRequiredRevenue, "")
	}
	if req.Kind == model.KindExpense && strings.TrimSpace(req.Category) == "" {
		sl.ReportError(req.Category, "category", "Category", tagRequiredExpense, "")
	}
}

var requestFieldNames = map[string]string{
	"Kind":           "kind",
	"Amount":         "amount",
	"Description":    "description",
	"PaymentMethod":  "payment_method",
	"Category":       "category",
	"IdempotencyKey": "idempotency_key",
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "gt":
		return "amount must be greater than zero"
	case tagCents:
		return "amount must be in whole cents"
	case tagMaxAmount:
		return "amount must be at most " + param
	case tagBlank:
		return "description is required"
	case tagRequiredRevenue:
		return "payment method is required for revenue"
	case tagRequiredExpense:
		return "category is required for expense"
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + param
	case "max":
		return field + " must be at most " + param + " characters"
	default:
		return field + " is invalid"
	}
}

// ValidateTransaction checks a request without touching the database.
func ValidateTransaction(req *RecordTransactionRequest) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []FieldError{}}
	if req == nil {
		result.Valid = false
		result.Errors = append(result.Errors, FieldError{Field: "input", Message: "request body is required"})
		return result
	}

	for _, e := range validator.ValidateStruct(req) {
		name, ok := requestFieldNames[e.Field]
		if !ok {
			name = e.Field
		}
		result.Errors = append(result.Errors, FieldError{
			Field:   name,
			Message: fieldMessage(name, e.Tag, e.Value),
		})
	}
	result.Valid = len(result.Errors) == 0
	return result
}
