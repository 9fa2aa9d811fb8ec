// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/platform/apperr"
	"github.com/catalogsync/sir/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "table", "artist", false},
		{"empty_string", "table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "STRUCTURAL_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MaxLen checks the maximum-length rule.
*/
func TestValidator_MaxLen(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		max      int
		hasError bool
	}{
		{"under_limit", "artist", 10, false},
		{"at_limit", "artist", 6, false},
		{"over_limit", "release_group", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MaxLen("table", tt.value, tt.max)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks the allowed-set membership rule.
*/
func TestValidator_OneOf(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"allowed", "insert", false},
		{"not_allowed", "truncate", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("operation", tt.value, "insert", "update", "delete")
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Custom checks the escape hatch for ad-hoc predicates.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("sequence_id", -1 < 0, "sequence_id must not be negative")

	assert.True(t, v.HasErrors())
	err := v.Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "sequence_id", ae.Details[0].Field)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("table", "artist").
		MaxLen("table", "artist", 32).
		OneOf("operation", "insert", "insert", "update", "delete").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation across a chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("table", "").                            // fails
		MaxLen("table", "way_too_long_a_table_name", 5).   // fails
		OneOf("operation", "truncate", "insert", "update"). // fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "STRUCTURAL_ERROR", ae.Code)
	assert.Len(t, ae.Details, 3)
}
