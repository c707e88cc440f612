package invoice

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransformComputesLineTotalsAndSubtotal(t *testing.T) {
	form := FormData{
		Name:  "Acme Corp",
		Email: "billing@acme.example",
		Items: []FormItem{
			{Description: "Consulting", Quantity: d("2"), UnitPrice: d("150.00")},
			{Description: "Support plan", Quantity: d("3"), UnitPrice: d("150.00")},
		},
	}

	data := Transform(form, CompanyInfo{Currency: CurrencyUSD})

	require.Len(t, data.Items, 2)
	assert.True(t, data.Items[0].Total.Equal(d("300.00")), "got %s", data.Items[0].Total)
	assert.True(t, data.Items[1].Total.Equal(d("450.00")), "got %s", data.Items[1].Total)
	assert.True(t, data.Subtotal.Equal(d("750.00")), "got %s", data.Subtotal)
}

func TestTransformIgnoresClientSuppliedTotals(t *testing.T) {
	// Fractional quantities multiply exactly, no float rounding.
	form := FormData{
		Items: []FormItem{
			{Description: "Hours", Quantity: d("1.5"), UnitPrice: d("99.99")},
		},
	}

	data := Transform(form, CompanyInfo{})

	assert.True(t, data.Items[0].Total.Equal(d("149.985")), "got %s", data.Items[0].Total)
	assert.True(t, data.Subtotal.Equal(d("149.985")), "got %s", data.Subtotal)
}

func TestTransformPreservesClientAndCompanyBlocks(t *testing.T) {
	form := FormData{
		Name:    "Jane Client",
		ID:      "C-42",
		Email:   "jane@client.example",
		Phone:   "+1 555 0100",
		Address: "1 Client Way",
		Notes:   "Net 30",
	}
	company := CompanyInfo{
		Name:     "Facturalo Ltd",
		TaxID:    "TAX-123",
		Currency: CurrencyEURO,
	}

	data := Transform(form, company)

	assert.Equal(t, "Jane Client", data.Client.Name)
	assert.Equal(t, "C-42", data.Client.ID)
	assert.Equal(t, "jane@client.example", data.Client.Email)
	assert.Equal(t, "+1 555 0100", data.Client.Phone)
	assert.Equal(t, "1 Client Way", data.Client.Address)
	assert.Equal(t, "Net 30", data.Notes)
	assert.Equal(t, company, data.Company)
	assert.Equal(t, CurrencyEURO, data.Currency)
	assert.Empty(t, data.Items)
	assert.True(t, data.Subtotal.IsZero())
}

func TestTransformInvoiceNumberAndDateFormat(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	data := Transform(FormData{}, CompanyInfo{})

	assert.Regexp(t, regexp.MustCompile(`^FAC-2025-\d{6}$`), data.Number)
	assert.Equal(t, "14/03/2025", data.Date)
}

func TestTransformNumbersUniqueWithinSameMillisecond(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		data := Transform(FormData{}, CompanyInfo{})
		assert.False(t, seen[data.Number], "duplicate invoice number %s", data.Number)
		seen[data.Number] = true
	}
}
