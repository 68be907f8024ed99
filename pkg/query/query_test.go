// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/pkg/query"
)

/*
TestInts parses repeated and comma separated integers strictly.
*/
func TestInts(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []int
		hasError bool
	}{
		{"empty", nil, nil, false},
		{"repeated", []string{"1", "5"}, []int{1, 5}, false},
		{"comma", []string{"1,5", " 7 "}, []int{1, 5, 7}, false},
		{"blank_entries", []string{"", " , "}, nil, false},
		{"not_numeric", []string{"1", "abc"}, nil, true},
		{"int32_max", []string{"2147483647"}, []int{2147483647}, false},
		{"beyond_int32", []string{"3000000000"}, nil, true},
		{"below_int32", []string{"-3000000000"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.Ints(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

/*
TestInt covers the single-value parser.
*/
func TestInt(t *testing.T) {
	value, present, err := query.Int(" 42 ")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 42, value)

	_, present, err = query.Int("")
	require.NoError(t, err)
	assert.False(t, present)

	_, _, err = query.Int("4x")
	assert.Error(t, err)

	_, _, err = query.Int("3000000000")
	assert.ErrorContains(t, err, "out of range")
}
