package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", CurrencySymbol(CurrencyUSD))
	assert.Equal(t, "€", CurrencySymbol(CurrencyEURO))
	assert.Equal(t, "€", CurrencySymbol("euro"))

	// Unset and unknown currencies fall back to USD.
	assert.Equal(t, "$", CurrencySymbol(""))
	assert.Equal(t, "$", CurrencySymbol("GBP"))
}
