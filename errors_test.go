package sqlcraft_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm/sqlcraft"
)

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		is       func(error) bool
	}{
		{"IsInvalidArgumentErr", sqlcraft.ErrInvalidArgument, sqlcraft.IsInvalidArgumentErr},
		{"IsTypeMismatchErr", sqlcraft.ErrTypeMismatch, sqlcraft.IsTypeMismatchErr},
		{"IsOverflowErr", sqlcraft.ErrOverflow, sqlcraft.IsOverflowErr},
		{"IsUnresolvedErr", sqlcraft.ErrUnresolved, sqlcraft.IsUnresolvedErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(fmt.Errorf("wrapped: %w", tt.sentinel)), "should match wrapped sentinel")
			assert.False(t, tt.is(errors.New("other error")), "should not match other errors")
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		sqlcraft.ErrInvalidArgument,
		sqlcraft.ErrTypeMismatch,
		sqlcraft.ErrOverflow,
		sqlcraft.ErrUnresolved,
	}
	for i, a := range sentinels {
		assert.Contains(t, a.Error(), "sqlcraft:")
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
