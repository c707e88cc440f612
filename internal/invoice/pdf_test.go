package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPDFNilInvoice(t *testing.T) {
	out, err := RenderPDF(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	data := Transform(FormData{
		Name:    "Jane Client",
		Email:   "jane@client.example",
		Address: "1 Client Way",
		Notes:   "Thank you for your business",
		Items: []FormItem{
			{Description: "Consulting", Quantity: d("2"), UnitPrice: d("150.00")},
		},
	}, CompanyInfo{
		Name:     "Facturalo Ltd",
		TaxID:    "TAX-123",
		Address:  "42 Issuer St",
		Email:    "billing@facturalo.dev",
		Currency: CurrencyEURO,
	})

	out, err := RenderPDF(&data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDFIsRepeatable(t *testing.T) {
	data := Transform(FormData{
		Items: []FormItem{{Description: "Item", Quantity: d("1"), UnitPrice: d("10")}},
	}, CompanyInfo{})

	first, err := RenderPDF(&data)
	require.NoError(t, err)
	second, err := RenderPDF(&data)
	require.NoError(t, err)
	assert.NotEmpty(t, second)
	assert.NotEmpty(t, first)
}

func TestLogoImageType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n rest of image")
	jpeg := []byte("\xff\xd8\xff\xe0 rest of image")

	assert.Equal(t, "PNG", logoImageType(png))
	assert.Equal(t, "JPG", logoImageType(jpeg))
	assert.Equal(t, "GIF", logoImageType([]byte("GIF89a rest of image")))
	assert.Equal(t, "", logoImageType(nil))
	assert.Equal(t, "", logoImageType([]byte("plain text")))
}
