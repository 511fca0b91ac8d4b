package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSizes(t *testing.T) {
	cases := []struct {
		name              string
		maxConns, workers int
		wantMax, wantMin  int32
	}{
		{"configurado", 25, 4, 25, 4},
		{"sin max usa el default", 0, 4, defaultMaxConns, 4},
		{"max insuficiente para los workers", 5, 8, 8 + reservedConns, 8},
		{"workers inválidos", 10, 0, 10, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotMax, gotMin := poolSizes(c.maxConns, c.workers)
			assert.Equal(t, c.wantMax, gotMax)
			assert.Equal(t, c.wantMin, gotMin)
			assert.GreaterOrEqual(t, gotMax, gotMin+reservedConns)
		})
	}
}
