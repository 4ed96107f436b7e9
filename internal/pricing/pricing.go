// Package pricing computes receipt totals from a list of priced line items.
//
// All arithmetic is done on decimals. Only the tax amount is rounded (to cents)
// during computation; everything else keeps full precision until display.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when a price, discount or tax rate is below zero.
var ErrNegativeAmount = errors.New("amount must not be negative")

var hundred = decimal.NewFromInt(100)

// LineItem is a named, priced unit shown on a receipt.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
}

func NewLineItem(name string, unitPrice decimal.Decimal) LineItem {
	return LineItem{Name: name, UnitPrice: unitPrice}
}

// Result holds the derived totals of a receipt. It is never persisted.
type Result struct {
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TaxRatePercent decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Negative reports whether the discount exceeded the subtotal.
func (r Result) Negative() bool { return r.GrandTotal.IsNegative() }

// HasDiscount reports whether a discount row belongs on the receipt.
func (r Result) HasDiscount() bool { return r.Discount.IsPositive() }

// HasTax reports whether a tax row belongs on the receipt.
func (r Result) HasTax() bool { return r.Tax.IsPositive() }

// Subtotal sums the unit prices of items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice)
	}
	return total
}

// Compute derives subtotal, tax and grand total.
//
// Tax is charged on the discounted amount, rounded to cents and never negative.
// A discount larger than the subtotal is accepted and produces a negative grand total;
// callers decide whether that is allowed.
func Compute(items []LineItem, discount, taxRatePercent decimal.Decimal) (Result, error) {
	if discount.IsNegative() {
		return Result{}, fmt.Errorf("discount %s: %w", discount, ErrNegativeAmount)
	}
	if taxRatePercent.IsNegative() {
		return Result{}, fmt.Errorf("tax rate %s: %w", taxRatePercent, ErrNegativeAmount)
	}
	for _, it := range items {
		if it.UnitPrice.IsNegative() {
			return Result{}, fmt.Errorf("item %q price %s: %w", it.Name, it.UnitPrice, ErrNegativeAmount)
		}
	}

	subtotal := Subtotal(items)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRatePercent).Div(hundred).Round(2)
	if !tax.IsPositive() {
		tax = decimal.Zero
	}
	return Result{
		Subtotal:       subtotal,
		Discount:       discount,
		TaxRatePercent: taxRatePercent,
		Tax:            tax,
		GrandTotal:     taxable.Add(tax),
	}, nil
}

// FormatMoney renders v with two decimals behind the currency symbol, e.g. "$13.20" or "-$3.00".
func FormatMoney(currency string, v decimal.Decimal) string {
	if v.IsNegative() {
		return "-" + currency + v.Neg().StringFixed(2)
	}
	return currency + v.StringFixed(2)
}
