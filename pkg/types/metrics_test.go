package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefectRate(t *testing.T) {
	tests := []struct {
		name   string
		failed int64
		total  int64
		want   float64
	}{
		{"no tests", 0, 0, 0},
		{"failures without tests", 3, 0, 0},
		{"one of one", 1, 1, 100},
		{"one of three", 1, 3, 33.33},
		{"two of three", 2, 3, 66.67},
		{"more failures than cases", 5, 2, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefectRate(tt.failed, tt.total))
		})
	}
}

func TestNewEntity(t *testing.T) {
	for _, name := range StandardTableNames {
		e, err := NewEntity(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, e, name)
	}

	_, err := NewEntity("widgets")
	assert.ErrorIs(t, err, ErrTableNotFound)
}
