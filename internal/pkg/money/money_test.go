//go:build unit

package money_test

import (
	"testing"

	"property-revenue-sync/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 200.0, money.Round2(200.004))
	assert.Equal(t, 0.13, money.Round2(0.125))
	assert.Equal(t, -1.5, money.Round2(-1.499999))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "200.00", money.Format(200))
	assert.Equal(t, "1234.57", money.Format(1234.567))
}

func TestParse(t *testing.T) {
	cases := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{raw: "200", want: 200, wantOK: true},
		{raw: " 1,250.50 ", want: 1250.5, wantOK: true},
		{raw: "AED 300", want: 300, wantOK: true},
		{raw: "$42.1", want: 42.1, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "n/a", wantOK: false},
		{raw: "NaN", wantOK: false},
		{raw: "Inf", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := money.Parse(tc.raw)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, 0.0, money.ParseOrZero("garbage"))
	assert.Equal(t, 0.0, money.NonNegative(-3))
}
