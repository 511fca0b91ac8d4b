package mrp_test

import (
	"testing"

	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/stretchr/testify/assert"
)

func TestExplodedQuantity(t *testing.T) {
	cases := []struct {
		name                      string
		parent, line, base, scrap string
		want                      string
	}{
		{"sin merma", "10", "2", "1", "0", "20"},
		{"merma del 10%", "10", "2", "1", "10", "22"},
		{"cantidad base 4", "10", "2", "4", "0", "5"},
		{"base y merma", "12", "3", "4", "5", "9.45"},
		{"redondeo a 6 decimales", "1", "1", "3", "0", "0.333333"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := mrp.ExplodedQuantity(d(c.parent), d(c.line), d(c.base), d(c.scrap))
			assert.True(t, got.Equal(d(c.want)), "esperado %s, obtenido %s", c.want, got)
		})
	}
}

func TestExplodedQuantity_MermaNuncaReduce(t *testing.T) {
	base := mrp.ExplodedQuantity(d("7"), d("3"), d("2"), d("0"))
	withScrap := mrp.ExplodedQuantity(d("7"), d("3"), d("2"), d("2.5"))
	assert.True(t, withScrap.GreaterThan(base))
}
