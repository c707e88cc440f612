package invoice

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// lastIssueStamp holds the millisecond stamp of the most recent issuance.
// Stamps are forced strictly increasing so two invoices issued inside the
// same millisecond still get distinct numbers.
var lastIssueStamp atomic.Int64

func nextIssueStamp(now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		last := lastIssueStamp.Load()
		if ms <= last {
			ms = last + 1
		}
		if lastIssueStamp.CompareAndSwap(last, ms) {
			return ms
		}
	}
}

// Transform builds the canonical invoice document from form input and the
// caller-supplied company profile. Each call is a new issuance event: the
// invoice number and date are generated fresh, so callers must invoke it once
// per "issue an invoice" action and reuse the result for repeated renders.
func Transform(form FormData, company CompanyInfo) Data {
	items := make([]Item, 0, len(form.Items))
	subtotal := decimal.Zero
	for _, it := range form.Items {
		total := it.Quantity.Mul(it.UnitPrice)
		items = append(items, Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       total,
		})
		subtotal = subtotal.Add(total)
	}

	now := timeNow()
	stamp := nextIssueStamp(now)

	return Data{
		Number:  fmt.Sprintf("FAC-%d-%06d", now.Year(), stamp%1_000_000),
		Date:    now.Format("02/01/2006"),
		Company: company,
		Client: ClientInfo{
			ID:      form.ID,
			Name:    form.Name,
			Address: form.Address,
			Phone:   form.Phone,
			Email:   form.Email,
		},
		Currency: company.Currency,
		Items:    items,
		Subtotal: subtotal,
		Notes:    form.Notes,
	}
}
