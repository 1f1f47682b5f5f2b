// Package mailer sends payment receipts and due reminders by email.
package mailer

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP delivers receipts through an SMTP server.
type SMTP struct {
	dialer      *gomail.Dialer
	from        string
	institution string
	currency    string
}

// NewSMTP creates an SMTP mailer.
func NewSMTP(cfg Config, institution, currency string) *SMTP {
	return &SMTP{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:        cfg.From,
		institution: institution,
		currency:    currency,
	}
}

// SendReceipt emails the receipt document to e.To.
func (s *SMTP) SendReceipt(ctx context.Context, e domain.ReceiptEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.dialer.DialAndSend(s.Message(e))
}

// Message builds the receipt email.
func (s *SMTP) Message(e domain.ReceiptEmail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", fmt.Sprintf("Payment Receipt - Transaction #%s", e.TransactionID))

	body := fmt.Sprintf(`Dear %s,

Thank you for your payment!

Transaction ID: %s
Amount: %s %s
Date: %s

Please find your official receipt attached to this email.

Best regards,
%s
Accounts Department
`, e.PayerName, e.TransactionID, s.currency, moneypkg.Format(e.Amount), e.Date.Format("02 Jan 2006 15:04"), s.institution)

	m.SetBody("text/plain", body)

	if len(e.Document) > 0 {
		doc := e.Document
		m.Attach(
			fmt.Sprintf("Receipt_%s.pdf", e.TransactionID),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(doc)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}

	return m
}

// SendReminder emails a due reminder to e.To.
func (s *SMTP) SendReminder(ctx context.Context, e domain.ReminderEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.dialer.DialAndSend(s.ReminderMessage(e))
}

// ReminderMessage builds the due reminder email.
func (s *SMTP) ReminderMessage(e domain.ReminderEmail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", e.To)

	amount := s.currency + " " + moneypkg.Format(e.Amount)

	var text string

	switch {
	case e.Message != "":
		m.SetHeader("Subject", "Fee Reminder - "+s.institution)
		text = fmt.Sprintf("Dear %s,\n\n%s", e.Name, e.Message)
	case e.Template == domain.TemplateOverdueNotice:
		m.SetHeader("Subject", "URGENT: Fee Payment Overdue")
		text = fmt.Sprintf("URGENT: Dear %s, your fee payment of %s is overdue.\nPlease pay immediately to avoid penalties.", e.Name, amount)
	default:
		m.SetHeader("Subject", "Fee Payment Due")
		text = fmt.Sprintf("Dear %s, your fee payment of %s is due on %s.\nPlease pay at your earliest convenience.", e.Name, amount, e.DueDate.Format("02 Jan 2006"))
	}

	body := fmt.Sprintf(`%s

Student: %s

Best regards,
%s
Accounts Department
`, text, e.Student, s.institution)

	m.SetBody("text/plain", body)

	return m
}

// Nop drops every email. It is used when no SMTP server is configured.
type Nop struct{}

// SendReceipt does nothing.
func (Nop) SendReceipt(context.Context, domain.ReceiptEmail) error {
	return nil
}

// SendReminder does nothing.
func (Nop) SendReminder(context.Context, domain.ReminderEmail) error {
	return nil
}
