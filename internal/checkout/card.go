package checkout

import (
	"strings"

	dErrors "assetdesk/pkg/domain-errors"
)

const (
	minCardDigits = 12
	maxCardDigits = 19
)

// Card holds the payment form as the user sees it: the number grouped in
// fours and the expiry as MM/YY. It stays inside the coordinator; responses
// carry a CardSummary.
type Card struct {
	Holder string `json:"-"`
	Number string `json:"-"`
	Expiry string `json:"-"`
	CVC    string `json:"-"`
}

// CardSummary is the entered card as it may be shown back: holder, expiry and
// the number masked down to its last four digits.
type CardSummary struct {
	Holder string `json:"holder,omitempty"`
	Number string `json:"number,omitempty"`
	Last4  string `json:"last4,omitempty"`
	Expiry string `json:"expiry,omitempty"`
}

// CardDetails is the digits-only form handed to the processor.
type CardDetails struct {
	Holder   string
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// NewCard normalizes raw form input. Non-digits are dropped and overlong
// input is cut.
func NewCard(holder, number, expiry, cvc string) Card {
	return Card{
		Holder: strings.TrimSpace(holder),
		Number: FormatCardNumber(number),
		Expiry: FormatExpiry(expiry),
		CVC:    truncate(digitsOnly(cvc), 4),
	}
}

// FormatCardNumber groups the digits in fours: 4242424242424242 becomes
// "4242 4242 4242 4242".
func FormatCardNumber(raw string) string {
	digits := truncate(digitsOnly(raw), maxCardDigits)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry turns MMYY into MM/YY: "1225" becomes "12/25".
func FormatExpiry(raw string) string {
	digits := truncate(digitsOnly(raw), 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// MaskCardNumber hides every digit but the last four, keeping the grouping:
// "4242 4242 4242 4242" becomes "•••• •••• •••• 4242".
func MaskCardNumber(raw string) string {
	formatted := FormatCardNumber(raw)
	visible := len(digitsOnly(formatted)) - 4
	var b strings.Builder
	for _, r := range formatted {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		if visible > 0 {
			b.WriteRune('•')
			visible--
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Summary is the masked form of c. The CVC never leaves the card.
func (c Card) Summary() CardSummary {
	digits := digitsOnly(c.Number)
	return CardSummary{
		Holder: c.Holder,
		Number: MaskCardNumber(digits),
		Last4:  digits[max(len(digits)-4, 0):],
		Expiry: c.Expiry,
	}
}

// Validate checks shape only. Whether the card is real, unexpired or passes
// a checksum is for the processor to say.
func (c Card) Validate() error {
	number := digitsOnly(c.Number)
	if number == "" {
		return dErrors.New(dErrors.CodeValidation, "Please enter your card number.")
	}
	if len(number) < minCardDigits {
		return dErrors.New(dErrors.CodeValidation, "Card number is too short.")
	}
	if len(digitsOnly(c.Expiry)) != 4 {
		return dErrors.New(dErrors.CodeValidation, "Expiry must be MM/YY.")
	}
	if n := len(digitsOnly(c.CVC)); n < 3 || n > 4 {
		return dErrors.New(dErrors.CodeValidation, "CVC must be 3 or 4 digits.")
	}
	return nil
}

// Details returns the digits-only form.
func (c Card) Details() CardDetails {
	expiry := digitsOnly(c.Expiry)
	d := CardDetails{
		Holder: c.Holder,
		Number: digitsOnly(c.Number),
		CVC:    digitsOnly(c.CVC),
	}
	if len(expiry) == 4 {
		d.ExpMonth, d.ExpYear = expiry[:2], expiry[2:]
	}
	return d
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
