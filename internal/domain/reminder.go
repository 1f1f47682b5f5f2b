package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidMessage indicates an empty message.
	ErrInvalidMessage = errors.New("message is required")
	// ErrInvalidReminderTarget indicates an unknown reminder audience.
	ErrInvalidReminderTarget = errors.New("target must be student, parent or all")
	// ErrNothingDue indicates a reminder for a student without pending invoices.
	ErrNothingDue = errors.New("student has no pending invoices")
)

// ReminderHistoryLimit is how many reminders the history returns.
const ReminderHistoryLimit = 10

// ReminderTarget selects who receives a reminder.
type ReminderTarget string

// Reminder audiences.
const (
	ReminderTargetStudent ReminderTarget = "student"
	ReminderTargetParent  ReminderTarget = "parent"
	ReminderTargetAll     ReminderTarget = "all"
)

// Valid reports whether t is a known audience.
func (t ReminderTarget) Valid() bool {
	switch t {
	case ReminderTargetStudent, ReminderTargetParent, ReminderTargetAll:
		return true
	}

	return false
}

// Students reports whether students receive reminders sent to t.
func (t ReminderTarget) Students() bool {
	return t == ReminderTargetStudent || t == ReminderTargetAll
}

// Parents reports whether parents receive reminders sent to t.
func (t ReminderTarget) Parents() bool {
	return t == ReminderTargetParent || t == ReminderTargetAll
}

// ReminderKind tells single reminders from bulk ones.
type ReminderKind string

// Reminder kinds.
const (
	ReminderKindIndividual ReminderKind = "individual"
	ReminderKindBulk       ReminderKind = "bulk"
)

// Reminder templates used when a reminder has no message of its own.
const (
	TemplateDueReminder   = "due_reminder"
	TemplateOverdueNotice = "overdue_notice"
)

// Reminder is an entry of the reminder history.
type Reminder struct {
	ID         uuid.UUID      `json:"id"`
	Kind       ReminderKind   `json:"kind"`
	Target     ReminderTarget `json:"target"`
	Student    string         `json:"student,omitempty"`
	Message    string         `json:"message,omitempty"`
	Template   string         `json:"template,omitempty"`
	Students   int            `json:"students"`
	Recipients int            `json:"recipients"`
	SentBy     string         `json:"sent_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ReminderParams is the input data to remind one student of their dues.
type ReminderParams struct {
	Student string
	Target  ReminderTarget
	Message string
}

// BulkReminderParams is the input data to remind every student with dues.
type BulkReminderParams struct {
	Target  ReminderTarget
	Message string
}

// ReminderEmail is the message handed to the mailer for a due reminder.
// Without Message the mailer renders Template from Amount and DueDate.
type ReminderEmail struct {
	To       string
	Name     string
	Student  string
	Message  string
	Template string
	Amount   decimal.Decimal
	DueDate  time.Time
}
