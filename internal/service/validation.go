package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/receiptbook/internal/allocator"
	"github.com/mmynk/receiptbook/internal/models"
	"github.com/mmynk/receiptbook/internal/storage"
)

// Policy holds the business limits enforced by the services.
type Policy struct {
	// MaxRangeWidth is the widest range (end - start) a seller may hold.
	MaxRangeWidth int
	// DefaultCommission applies to sellers created without a commission.
	DefaultCommission float64
}

// DefaultPolicy returns the limits of a standard paper receipt book.
func DefaultPolicy() Policy {
	return Policy{
		MaxRangeWidth:     allocator.DefaultMaxRangeWidth,
		DefaultCommission: 5,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type sellerForm struct {
	Name       string  `validate:"required,max=100"`
	Commission float64 `validate:"gte=0,lte=100"`
}

type lineItemForm struct {
	Order       string  `validate:"max=50"`
	Description string  `validate:"required,max=200"`
	Quantity    float64 `validate:"gt=0"`
	UnitPrice   float64 `validate:"gt=0"`
}

var fieldMessages = map[string]string{
	"Name.required":        "seller name is required",
	"Name.max":             "seller name is too long",
	"Commission.gte":       "commission must be between 0 and 100",
	"Commission.lte":       "commission must be between 0 and 100",
	"Order.max":            "order label is too long",
	"Description.required": "description is required",
	"Description.max":      "description is too long",
	"Quantity.gt":          "quantity must be greater than zero",
	"UnitPrice.gt":         "unit price must be greater than zero",
}

// formError turns validator output into one user-facing message.
func formError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
		}
		msgs = append(msgs, msg)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validateSellerForm(name string, commission float64) error {
	if err := validate.Struct(sellerForm{Name: name, Commission: commission}); err != nil {
		return formError(err)
	}
	return nil
}

// validateItems checks the item count and every item, trimming text fields.
func validateItems(items []models.LineItem) error {
	if len(items) == 0 {
		return errors.New("a receipt needs at least one item")
	}
	if len(items) > models.MaxLineItems {
		return fmt.Errorf("a receipt holds at most %d items", models.MaxLineItems)
	}
	for i := range items {
		items[i].Order = strings.TrimSpace(items[i].Order)
		items[i].Description = strings.TrimSpace(items[i].Description)
		form := lineItemForm{
			Order:       items[i].Order,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			UnitPrice:   items[i].UnitPrice,
		}
		if err := validate.Struct(form); err != nil {
			return fmt.Errorf("item %d: %w", i+1, formError(err))
		}
	}
	return nil
}

// normalizeDate defaults an empty date to today and checks the layout.
func normalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format(models.DateLayout), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	return date, nil
}

func invalidArgument(err error) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// rangeError maps allocator failures to Connect errors.
func rangeError(err error) *connect.Error {
	if errors.Is(err, allocator.ErrRangeExhausted) {
		return connect.NewError(connect.CodeResourceExhausted, err)
	}
	return invalidArgument(err)
}

// storeError maps storage failures to Connect errors. Unexpected failures are
// logged and reported with a generic message.
func storeError(op string, err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicateNumber):
		return connect.NewError(connect.CodeAlreadyExists, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("failed to %s", op))
}

func formatRange(s *models.Seller) string {
	return fmt.Sprintf("%04d-%04d", s.StartRange, s.EndRange)
}
