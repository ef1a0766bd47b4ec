package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValidate(t *testing.T) {
	c := Range(0, 100)

	tests := []struct {
		name    string
		v       Value
		wantErr bool
	}{
		{"inside", Int(50), false},
		{"lower bound inclusive", Int(0), false},
		{"upper bound inclusive", Int(100), false},
		{"below", Int(-1), true},
		{"above", Float(100.5), true},
		{"float inside", Float(99.9), false},
		{"non-numeric", String("50"), true},
		{"bool", Bool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Validate(tt.v)
			if tt.wantErr {
				require.Error(t, err)
				var oor *OutOfRangeError
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, 0.0, oor.Lower)
				assert.Equal(t, 100.0, oor.Upper)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoriesValidate(t *testing.T) {
	c := Categories("gold", "silver")

	assert.NoError(t, c.Validate(String("gold")))
	assert.NoError(t, c.Validate(String("silver")))

	err := c.Validate(String("bronze"))
	require.Error(t, err)
	var cat *CategoryError
	require.ErrorAs(t, err, &cat)
	assert.Equal(t, []string{"gold", "silver"}, cat.Allowed)

	assert.Error(t, c.Validate(Int(1)), "non-strings are outside any category set")
}
