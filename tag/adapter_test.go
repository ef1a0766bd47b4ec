package tag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"bool", true, Bool(true)},
		{"string", "gold", String("gold")},
		{"int", 42, Int(42)},
		{"int64", int64(42), Int(42)},
		{"uint16", uint16(7), Int(7)},
		{"float64", 2.5, Float(2.5)},
		{"float32", float32(0.5), Float(0.5)},
		{"value passthrough", Int(1), Int(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFromUnsupported(t *testing.T) {
	_, err := From(struct{}{})
	require.Error(t, err)
	var ut *UnsupportedTypeError
	assert.ErrorAs(t, err, &ut)

	_, err = From(uint64(1) << 63)
	assert.Error(t, err, "out-of-range uint64 must not truncate silently")

	v, err := From(uint64(1) << 40)
	require.NoError(t, err)
	got, ok := v.AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(1)<<40, got)

	if math.MaxUint > math.MaxInt64 {
		_, err = From(uint(math.MaxUint))
		assert.Error(t, err, "uint gets the same guard as uint64")
	}
}

func TestSelectorFrom(t *testing.T) {
	sel, err := SelectorFrom("gold")
	require.NoError(t, err)
	assert.True(t, sel.Match(String("gold")))

	sel, err = SelectorFrom([]int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, sel.Match(Int(2)))
	assert.False(t, sel.Match(Int(4)))

	sel, err = SelectorFrom(func(v Value) bool { return v.Kind == KindBool })
	require.NoError(t, err)
	assert.True(t, sel.Match(Bool(false)))

	sel, err = SelectorFrom([]any{"a", 1})
	require.NoError(t, err)
	assert.True(t, sel.Match(String("a")))
	assert.True(t, sel.Match(Int(1)))

	_, err = SelectorFrom(map[string]int{})
	require.Error(t, err)
	var ut *UnsupportedTypeError
	assert.ErrorAs(t, err, &ut)
}
