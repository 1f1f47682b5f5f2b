package ledgerservice

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/metrics"
)

type recipient struct {
	email string
	name  string
}

type dues struct {
	amount  decimal.Decimal
	dueDate time.Time
	overdue bool
}

// pendingDues sums the pending invoices and finds the earliest due date.
func pendingDues(invoices []domain.Invoice, now time.Time) (dues, bool) {
	d := dues{amount: decimal.Zero}
	found := false

	for _, inv := range invoices {
		if inv.Status != domain.InvoiceStatusPending {
			continue
		}

		d.amount = d.amount.Add(inv.Amount)
		d.overdue = d.overdue || inv.Overdue(now)

		if !found || inv.DueDate.Before(d.dueDate) {
			d.dueDate = inv.DueDate
		}

		found = true
	}

	return d, found
}

func cleanMessage(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > domain.MaxMessageLen {
		s = string(r[:domain.MaxMessageLen])
	}

	return s
}

// parentsOf maps every student to the parents linked to it.
func parentsOf(accounts []domain.Account) map[string][]domain.Account {
	result := make(map[string][]domain.Account)

	for _, a := range accounts {
		if a.Role != domain.RoleParent {
			continue
		}

		for _, c := range a.Children {
			result[c] = append(result[c], a)
		}
	}

	return result
}

func recipients(student domain.Account, parents []domain.Account, target domain.ReminderTarget) []recipient {
	var result []recipient

	if target.Students() && student.Email != "" {
		result = append(result, recipient{email: student.Email, name: student.FullName})
	}

	if target.Parents() {
		for _, p := range parents {
			if p.Email != "" {
				result = append(result, recipient{email: p.Email, name: p.FullName})
			}
		}
	}

	return result
}

// remind emails e to every recipient and returns how many were sent.
// Failures are logged only.
func (s *Service) remind(ctx context.Context, to []recipient, e domain.ReminderEmail) int {
	l := zerolog.Ctx(ctx)
	sent := 0

	for _, r := range to {
		e.To, e.Name = r.email, r.name

		if err := s.mailer.SendReminder(ctx, e); err != nil {
			metrics.AncillaryFailures.WithLabelValues("email").Inc()
			l.Error().Err(err).Str("student", e.Student).Str("to", r.email).Msg("cannot email reminder")

			continue
		}

		sent++
	}

	return sent
}

func (s *Service) record(ctx context.Context, r domain.Reminder) {
	if err := s.reminders.Add(ctx, r); err != nil {
		metrics.AncillaryFailures.WithLabelValues("reminder_history").Inc()

		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("reminder_id", r.ID.String()).Msg("cannot record reminder")
	}
}

// SendReminder reminds one student, its parents or both of pending fees.
// Without a message the due reminder or overdue notice template is used,
// which needs at least one pending invoice.
func (s *Service) SendReminder(ctx context.Context, sender string, arg domain.ReminderParams) (domain.Reminder, error) {
	if arg.Target == "" {
		arg.Target = domain.ReminderTargetStudent
	}

	if !arg.Target.Valid() {
		return domain.Reminder{}, domain.ErrInvalidReminderTarget
	}

	student, err := s.repo.Get(ctx, arg.Student)
	if err != nil {
		return domain.Reminder{}, err
	}

	if student.Role != domain.RoleStudent {
		return domain.Reminder{}, domain.ErrNotAStudent
	}

	now := s.now()
	msg := cleanMessage(arg.Message)

	e := domain.ReminderEmail{Student: student.FullName, Message: msg}
	r := domain.Reminder{
		ID:        uuid.New(),
		Kind:      domain.ReminderKindIndividual,
		Target:    arg.Target,
		Student:   student.Username,
		Message:   html.EscapeString(msg),
		Students:  1,
		SentBy:    sender,
		CreatedAt: now,
	}

	if msg == "" {
		invoices, err := s.repo.ListInvoices(ctx, student.Username)
		if err != nil {
			return domain.Reminder{}, err
		}

		d, ok := pendingDues(invoices, now)
		if !ok {
			metrics.ObserveLedger("reminder", domain.ErrNothingDue)
			return domain.Reminder{}, domain.ErrNothingDue
		}

		e.Template = domain.TemplateDueReminder
		if d.overdue {
			e.Template = domain.TemplateOverdueNotice
		}

		e.Amount, e.DueDate = d.amount, d.dueDate
		r.Template = e.Template
	}

	var parents []domain.Account

	if arg.Target.Parents() {
		accounts, err := s.repo.List(ctx)
		if err != nil {
			return domain.Reminder{}, err
		}

		parents = parentsOf(accounts)[student.Username]
	}

	r.Recipients = s.remind(ctx, recipients(student, parents, arg.Target), e)

	metrics.ObserveLedger("reminder", nil)
	s.record(ctx, r)

	l := zerolog.Ctx(ctx)
	l.Info().
		Str("student", student.Username).
		Str("target", string(r.Target)).
		Int("recipients", r.Recipients).
		Msg("reminder sent")

	return r, nil
}

// SendBulkReminders sends message to every student with pending invoices, to
// their parents or to both.
func (s *Service) SendBulkReminders(ctx context.Context, sender string, arg domain.BulkReminderParams) (domain.Reminder, error) {
	if arg.Target == "" {
		arg.Target = domain.ReminderTargetStudent
	}

	if !arg.Target.Valid() {
		return domain.Reminder{}, domain.ErrInvalidReminderTarget
	}

	msg := cleanMessage(arg.Message)
	if msg == "" {
		return domain.Reminder{}, domain.ErrInvalidMessage
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}

	parents := parentsOf(accounts)

	r := domain.Reminder{
		ID:        uuid.New(),
		Kind:      domain.ReminderKindBulk,
		Target:    arg.Target,
		Message:   html.EscapeString(msg),
		SentBy:    sender,
		CreatedAt: s.now(),
	}

	for _, a := range accounts {
		if a.Role != domain.RoleStudent {
			continue
		}

		invoices, err := s.repo.ListInvoices(ctx, a.Username)
		if err != nil {
			return domain.Reminder{}, err
		}

		if _, ok := pendingDues(invoices, r.CreatedAt); !ok {
			continue
		}

		r.Students++
		r.Recipients += s.remind(ctx, recipients(a, parents[a.Username], arg.Target), domain.ReminderEmail{
			Student: a.FullName,
			Message: msg,
		})
	}

	metrics.ObserveLedger("bulk_reminder", nil)
	s.record(ctx, r)

	l := zerolog.Ctx(ctx)
	l.Info().
		Str("target", string(r.Target)).
		Int("students", r.Students).
		Int("recipients", r.Recipients).
		Msg("bulk reminder sent")

	return r, nil
}

// Reminders returns the latest reminders, newest first.
func (s *Service) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	return s.reminders.Recent(ctx, domain.ReminderHistoryLimit)
}
