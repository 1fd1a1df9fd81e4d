package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	chunks := Chunk(items, 10)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 10)
	assert.Len(t, chunks[1], 10)
	assert.Len(t, chunks[2], 3)
	assert.Equal(t, 0, chunks[0][0])
	assert.Equal(t, 20, chunks[2][0])
	assert.Equal(t, 22, chunks[2][2])

	assert.Nil(t, Chunk([]int{}, 10))
	assert.Equal(t, [][]string{{"a", "b"}}, Chunk([]string{"a", "b"}, 0))
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"String", "174430", "174430"},
		{"WholeFloat", float64(174430), "174430"},
		{"Fraction", 1.5, "1.5"},
		{"Int", 42, "42"},
		{"Bytes", []byte("7"), "7"},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}
