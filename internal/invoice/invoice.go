// Package invoice implements the invoice issuance pipeline: form input is
// transformed into a render-ready invoice document, which can then be rendered
// to a PDF for preview or publication.
package invoice

import (
	"github.com/shopspring/decimal"
)

// Currency is the issuer's billing currency.
type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyEURO Currency = "EURO"
)

// FormItem is a single line item as captured by the invoice form.
type FormItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// FormData is the output contract of the invoice form. It is assumed to have
// passed validation upstream; the pipeline never re-validates it.
type FormData struct {
	Name    string
	ID      string
	Email   string
	Phone   string
	Address string
	Notes   string
	Items   []FormItem
}

// Item is a computed line item. Total is always Quantity * UnitPrice and is
// never taken from user input.
type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// CompanyInfo is the issuer block placed on the invoice. The caller resolves
// it from the account's company profile; a zero value means no profile exists.
type CompanyInfo struct {
	Name     string
	TaxID    string
	Address  string
	Phone    string
	Email    string
	Logo     []byte
	Currency Currency
}

// ClientInfo is the recipient block, built directly from form input. It does
// not have to match a persisted customer record.
type ClientInfo struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Email   string
}

// Data is the canonical, render-ready invoice document.
// Invariant: Subtotal == sum of Items[].Total.
type Data struct {
	Number   string
	Date     string
	Company  CompanyInfo
	Client   ClientInfo
	Currency Currency
	Items    []Item
	Subtotal decimal.Decimal
	Notes    string
}
