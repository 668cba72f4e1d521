package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_LegacyRegression(t *testing.T) {
	b := Estimate(1500, 2, 1, true)

	assert.Equal(t, 3000.0, b.AdultsAmount)
	assert.Equal(t, 750.0, b.ChildrenAmount)
	assert.Equal(t, 75.0, b.ServiceFee)
	assert.Equal(t, 150.0, b.Insurance)
	assert.Equal(t, 3975.0, b.Total)
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		adults    int
		children  int
		insurance bool
		want      float64
	}{
		{"no insurance", 1500, 2, 1, false, 3825},
		{"single adult", 999.99, 1, 0, false, 1024.99},
		{"children only count half", 1000, 1, 3, true, 1000 + 1500 + 100 + 200},
		{"negative counts clamp", 1000, -1, -2, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.price, tt.adults, tt.children, tt.insurance).Total)
		})
	}
}
