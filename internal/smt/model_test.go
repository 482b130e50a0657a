package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGetValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]int64
	}{
		{
			"single binding",
			"((x 3))",
			map[string]int64{"x": 3},
		},
		{
			"negative value",
			"((x (- 1)))",
			map[string]int64{"x": -1},
		},
		{
			"multiple bindings",
			"((x 3) (y (- 1)) (n 0))",
			map[string]int64{"x": 3, "y": -1, "n": 0},
		},
		{
			"multiline output",
			"((i 4)\n (n 4)\n (x (- 7)))",
			map[string]int64{"i": 4, "n": 4, "x": -7},
		},
		{
			"no bindings",
			"()",
			map[string]int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGetValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGetValueMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"sat",
		"((x))",
		"((x y))",
		"((x 3)",
		"((x (+ 1 2)))",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := parseGetValue(input)
			assert.Error(t, err)
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "sat", StatusSat.String())
	assert.Equal(t, "unsat", StatusUnsat.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
