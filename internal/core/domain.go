package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// ServiceLine is one billable item on an invoice draft.
	ServiceLine struct {
		ID              string          `json:"id"`
		Name            string          `json:"name"`
		Quantity        int64           `json:"quantity"`
		UnitPrice       decimal.Decimal `json:"price"`
		DiscountPercent decimal.Decimal `json:"discount"`
	}

	// InvoiceRecord is an immutable snapshot of a finalized invoice.
	// Only HasPDF may change after creation (false -> true on re-export).
	InvoiceRecord struct {
		ID            string            `json:"id"`
		Number        string            `json:"number"`
		Date          time.Time         `json:"date"`
		PersianDate   string            `json:"persianDate,omitempty"`
		Services      []ServiceLine     `json:"services"`
		Subtotal      decimal.Decimal   `json:"subtotal"`
		TotalDiscount decimal.Decimal   `json:"totalDiscount"`
		Tax           decimal.Decimal   `json:"tax"`
		GrandTotal    decimal.Decimal   `json:"grandTotal"`
		ServicesCount int               `json:"servicesCount"`
		Notes         string            `json:"notes,omitempty"`
		HasPDF        bool              `json:"hasPDF"`
		CompanyInfo   map[string]string `json:"companyInfo,omitempty"`
		CustomerInfo  map[string]string `json:"customerInfo,omitempty"`
		BankingInfo   map[string]string `json:"bankingInfo,omitempty"`
	}
)

var (
	ErrEmptyName       = errors.New("empty service name")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	ErrEmptyNumber     = errors.New("empty invoice number")
)

var hundred = decimal.New(1, 2)

// Validate rejects a service line at the entry boundary. The money engine
// assumes lines have already passed this check.
func (l ServiceLine) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if len(l.Name) > 200 {
		return errors.New("service name too long (max 200 characters)")
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// BaseAmount is quantity times unit price, before any discount.
func (l ServiceLine) BaseAmount() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}

// DiscountAmount is the per-line discount applied to the base amount.
func (l ServiceLine) DiscountAmount() decimal.Decimal {
	return l.BaseAmount().Mul(l.DiscountPercent).Div(hundred)
}

// LineTotal is the base amount minus the per-line discount.
// Non-negative for any line that passes Validate.
func (l ServiceLine) LineTotal() decimal.Decimal {
	return l.BaseAmount().Sub(l.DiscountAmount())
}

func (r InvoiceRecord) Validate() error {
	if strings.TrimSpace(r.Number) == "" {
		return ErrEmptyNumber
	}
	if r.Date.IsZero() {
		return errors.New("record date cannot be zero")
	}
	for _, l := range r.Services {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewRecordID returns a time-based, collision-tolerant record identifier.
// The millisecond prefix keeps ids roughly sortable; the uuid suffix makes
// near-simultaneous saves on the same device safe.
func NewRecordID(now time.Time) string {
	return "inv_" + strconv.FormatInt(now.UnixMilli(), 36) + "_" + uuid.NewString()[:8]
}
