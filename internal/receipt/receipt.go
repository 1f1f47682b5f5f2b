// Package receipt renders payment receipts as PDF documents.
package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/divan/num2words"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// Letterhead identifies the institution printed on every receipt.
type Letterhead struct {
	Name         string
	Subtitle     string
	Address      string
	ContactEmail string
	ContactPhone string
	Website      string
}

// Currency names used on the receipt.
type Currency struct {
	Code    string
	Unit    string
	Subunit string
}

// CurrencyFor returns the printed names of a currency code.
func CurrencyFor(code string) Currency {
	switch strings.ToUpper(code) {
	case "USD":
		return Currency{Code: "USD", Unit: "Dollars", Subunit: "Cents"}
	case "EUR":
		return Currency{Code: "EUR", Unit: "Euros", Subunit: "Cents"}
	}

	return Currency{Code: "INR", Unit: "Rupees", Subunit: "Paise"}
}

// Generator renders receipts.
type Generator struct {
	letterhead Letterhead
	currency   Currency
}

// NewGenerator creates a Generator.
func NewGenerator(l Letterhead, currencyCode string) *Generator {
	return &Generator{
		letterhead: l,
		currency:   CurrencyFor(currencyCode),
	}
}

const (
	margin    = 50.0
	fontName  = "Helvetica"
	lineSpace = 18.0
)

// Generate renders r as a one page PDF.
func (g *Generator) Generate(r domain.Receipt) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Receipt "+r.TransactionID, false)
	pdf.SetAuthor(g.letterhead.Name, false)
	pdf.AddPage()

	width, _ := pdf.GetPageSize()

	center := func(y float64, style string, size float64, text string) {
		pdf.SetFont(fontName, style, size)
		pdf.Text((width-pdf.GetStringWidth(text))/2, y, text)
	}

	y := 60.0
	center(y, "B", 18, g.letterhead.Name)

	if g.letterhead.Subtitle != "" {
		y += lineSpace
		center(y, "I", 10, g.letterhead.Subtitle)
	}

	if g.letterhead.Address != "" {
		y += lineSpace
		center(y, "", 10, g.letterhead.Address)
	}

	contact := strings.Join(nonEmpty(g.letterhead.ContactPhone, g.letterhead.ContactEmail, g.letterhead.Website), " | ")
	if contact != "" {
		y += lineSpace - 4
		center(y, "", 9, contact)
	}

	y += 12
	pdf.SetLineWidth(1.5)
	pdf.Line(margin, y, width-margin, y)

	y += 30
	center(y, "B", 14, "FEE PAYMENT RECEIPT")

	y += 30
	pdf.SetFont(fontName, "", 11)
	pdf.Text(margin, y, "Receipt No: FEE/"+r.TransactionID)

	date := "Date: " + r.Date.Format("02 Jan 2006")
	pdf.Text(width-margin-pdf.GetStringWidth(date), y, date)

	boxTop := y + 15
	y = boxTop + 25

	rows := [][2]string{
		{"Received from", r.FullName},
		{"Student ID", r.Username},
		{"Course", r.Course},
		{"Email", r.Email},
		{"Towards", r.Description},
		{"Transaction ID", r.TransactionID},
		{"Amount", g.currency.Code + " " + moneypkg.Format(r.Amount)},
		{"Amount in words", AmountInWords(r.Amount, g.currency)},
		{"Balance after payment", g.currency.Code + " " + moneypkg.Format(r.Balance)},
	}

	for _, row := range rows {
		if row[1] == "" {
			continue
		}

		pdf.SetFont(fontName, "B", 11)
		pdf.Text(margin+15, y, row[0]+":")
		pdf.SetFont(fontName, "", 11)

		for i, line := range pdf.SplitText(row[1], width-2*margin-190) {
			pdf.Text(margin+175, y+float64(i)*lineSpace, line)
			if i > 0 {
				y += lineSpace
			}
		}

		y += lineSpace + 4
	}

	pdf.SetLineWidth(0.8)
	pdf.Rect(margin, boxTop, width-2*margin, y-boxTop, "D")

	y += 40
	pdf.SetFont(fontName, "I", 9)
	pdf.Text(margin, y, "This is a computer generated receipt and does not require a signature.")

	signature := "Authorized Signatory"
	pdf.SetFont(fontName, "B", 10)
	pdf.Text(width-margin-pdf.GetStringWidth(signature), y+40, signature)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", r.TransactionID, err)
	}

	return buf.Bytes(), nil
}

// AmountInWords spells out amount, e.g. "Twelve thousand fifty Rupees Only".
func AmountInWords(amount decimal.Decimal, c Currency) string {
	amount = amount.Abs().Round(moneypkg.Scale)

	whole := amount.IntPart()
	fraction := amount.Sub(decimal.NewFromInt(whole)).Shift(moneypkg.Scale).IntPart()

	words := num2words.Convert(int(whole)) + " " + c.Unit
	if fraction > 0 {
		words += " and " + num2words.Convert(int(fraction)) + " " + c.Subunit
	}

	return strings.ToUpper(words[:1]) + words[1:] + " Only"
}

func nonEmpty(values ...string) []string {
	var out []string

	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}
