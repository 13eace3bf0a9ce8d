package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFinalPrice(t *testing.T) {
	price, err := CalculateFinalPrice(PriceInput{
		Weight:        dec(t, "3.5"),
		GoldPrice:     dec(t, "5000000"),
		MakingFee:     dec(t, "15"),
		ProfitPercent: dec(t, "8"),
	})
	require.NoError(t, err)
	assert.True(t, price.Equal(dec(t, "18900016.2")), "got %s", price)
	assert.Equal(t, "18900016.20", FormatPrice(price))
}

func TestCalculateFinalPriceMakingFeeIsFlat(t *testing.T) {
	base := PriceInput{
		Weight:        dec(t, "2"),
		GoldPrice:     dec(t, "100"),
		ProfitPercent: decimal.Zero,
	}
	withoutFee, err := CalculateFinalPrice(base)
	require.NoError(t, err)

	base.MakingFee = dec(t, "50")
	withFee, err := CalculateFinalPrice(base)
	require.NoError(t, err)

	assert.True(t, withFee.Sub(withoutFee).Equal(dec(t, "50")))
}

func TestCalculateFinalPriceZeroMarkup(t *testing.T) {
	price, err := CalculateFinalPrice(PriceInput{
		Weight:    dec(t, "1.25"),
		GoldPrice: dec(t, "4"),
	})
	require.NoError(t, err)
	assert.True(t, price.Equal(dec(t, "5")))
}

func TestCalculateFinalPriceRejectsInvalidInput(t *testing.T) {
	valid := PriceInput{
		Weight:        dec(t, "1"),
		GoldPrice:     dec(t, "1"),
		MakingFee:     dec(t, "0"),
		ProfitPercent: dec(t, "0"),
	}

	tests := []struct {
		name   string
		mutate func(*PriceInput)
	}{
		{"zero weight", func(in *PriceInput) { in.Weight = decimal.Zero }},
		{"negative weight", func(in *PriceInput) { in.Weight = dec(t, "-1") }},
		{"negative gold price", func(in *PriceInput) { in.GoldPrice = dec(t, "-1") }},
		{"zero gold price", func(in *PriceInput) { in.GoldPrice = decimal.Zero }},
		{"negative profit percent", func(in *PriceInput) { in.ProfitPercent = dec(t, "-5") }},
		{"negative making fee", func(in *PriceInput) { in.MakingFee = dec(t, "-0.01") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := CalculateFinalPrice(in)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}
