// Package payments owns the outbound payment wire formats: the UPI deep
// link handed to mobile clients, the web fallback URL, and the device-class
// decision that selects between the two handoff branches.
package payments

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkBuilder formats payment deep links for a fixed merchant identity.
// Construction is pure string formatting and never fails.
type LinkBuilder struct {
	Scheme          string
	PayeeAddress    string
	PayeeName       string
	Currency        string
	WebFallbackBase string
}

// PaymentURI renders the deep link for one checkout attempt:
//
//	scheme://pay?pa=<payee>&pn=<payee-name>&am=<amount>&cu=<currency>&tr=<tx-id>&tn=<note>
//
// Free-text fields are percent-encoded; the amount is a decimal string in
// the item's price unit.
func (b LinkBuilder) PaymentURI(amount int64, transactionID, note string) string {
	var sb strings.Builder
	sb.WriteString(b.Scheme)
	sb.WriteString("://pay?pa=")
	sb.WriteString(url.QueryEscape(b.PayeeAddress))
	sb.WriteString("&pn=")
	sb.WriteString(url.QueryEscape(b.PayeeName))
	sb.WriteString("&am=")
	sb.WriteString(FormatAmount(amount))
	sb.WriteString("&cu=")
	sb.WriteString(url.QueryEscape(b.Currency))
	sb.WriteString("&tr=")
	sb.WriteString(url.QueryEscape(transactionID))
	sb.WriteString("&tn=")
	sb.WriteString(url.QueryEscape(note))
	return sb.String()
}

// WebFallbackURL renders the browser payment URL offered when the app
// handoff is unavailable.
func (b LinkBuilder) WebFallbackURL(transactionID string) string {
	return b.WebFallbackBase + url.PathEscape(transactionID)
}

// FormatAmount renders a minor-unit amount as a major-unit decimal string,
// e.g. 1299 paise -> "12.99".
func FormatAmount(minor int64) string {
	if minor < 0 {
		minor = 0
	}
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
