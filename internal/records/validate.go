package records

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/ledgertag/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidationResult carries the clean subset of a record collection plus an
// aggregated error describing every excluded record. A malformed record is
// excluded and reported, never fatal to the whole pass.
type ValidationResult[T any] struct {
	Valid    []T
	Excluded int
	Err      error
}

func validateAll[T any](label string, in []T, key func(T) string) ValidationResult[T] {
	result := ValidationResult[T]{Valid: make([]T, 0, len(in))}
	for _, record := range in {
		if err := validate.Struct(record); err != nil {
			result.Excluded++
			result.Err = multierr.Append(result.Err, malformed(label, key(record), err))
			continue
		}
		result.Valid = append(result.Valid, record)
	}
	return result
}

func malformed(label, key string, cause error) error {
	msg := fmt.Sprintf("%s %q excluded", label, key)
	if errs, ok := cause.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			fields = append(fields, fieldErr.Field())
		}
		return pkgerrors.New(pkgerrors.CodeMalformedRecord, msg).
			WithDetails(map[string]any{"fields": fields})
	}
	return pkgerrors.Wrap(pkgerrors.CodeMalformedRecord, cause, msg)
}

// ValidateItems filters out items missing required fields.
func ValidateItems(items []Item) ValidationResult[Item] {
	return validateAll("item", items, func(i Item) string { return i.OrderID + "/" + i.Name })
}

// ValidateOrders filters out orders missing required fields.
func ValidateOrders(orders []Order) ValidationResult[Order] {
	return validateAll("order", orders, func(o Order) string { return o.ID })
}

// ValidateRefunds filters out refunds missing required fields.
func ValidateRefunds(refunds []Refund) ValidationResult[Refund] {
	return validateAll("refund", refunds, func(r Refund) string { return r.ID })
}

// ValidateTransactions filters out transactions missing required fields.
func ValidateTransactions(transactions []Transaction) ValidationResult[Transaction] {
	return validateAll("transaction", transactions, func(t Transaction) string { return t.ID })
}
