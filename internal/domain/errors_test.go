package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOutOfStockError(t *testing.T) {
	err := &OutOfStockError{
		ProductID:   "prod-a",
		ProductName: "Keyboard",
		Requested:   5,
		Available:   2,
	}

	t.Run("matches sentinel", func(t *testing.T) {
		if !errors.Is(err, ErrOutOfStock) {
			t.Fatalf("expected errors.Is to match ErrOutOfStock")
		}
	})

	t.Run("details survive wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("create order: %w", err)

		var oos *OutOfStockError
		if !errors.As(wrapped, &oos) {
			t.Fatalf("expected errors.As to recover OutOfStockError")
		}
		if oos.Requested != 5 || oos.Available != 2 {
			t.Fatalf("unexpected details: %+v", oos)
		}
		if !errors.Is(wrapped, ErrOutOfStock) {
			t.Fatalf("expected wrapped error to match sentinel")
		}
	})

	t.Run("message names the product and quantities", func(t *testing.T) {
		msg := err.Error()
		for _, want := range []string{"Keyboard", "5", "2"} {
			if !strings.Contains(msg, want) {
				t.Fatalf("expected message to contain %q, got %q", want, msg)
			}
		}
	})
}

func TestWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("%w: abc-123", ErrProductNotFound)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected wrapped sentinel to match")
	}
}
