package httpserver

import (
	"context"
	"time"

	"github.com/go-petr/edupay/internal/domain"
)

// DemoPasscode is the passcode of every seeded account.
const DemoPasscode = "1234"

// AccountCreator provisions accounts.
type AccountCreator interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountWithoutSecrets, error)
}

// InvoiceIssuer issues invoices to students.
type InvoiceIssuer interface {
	IssueInvoice(ctx context.Context, arg domain.IssueInvoiceParams) (domain.Invoice, error)
}

var demoAccounts = []domain.CreateAccountParams{
	{
		Username: "student1",
		Password: "edu123",
		FullName: "Student1",
		Email:    "student1@school.edu",
		Role:     domain.RoleStudent,
		Profile: domain.Profile{
			Phone:       "+91-9876543210",
			ParentName:  "Parent One",
			ParentPhone: "+91-9876543211",
			Address:     "123 Main Street, Chennai, Tamil Nadu - 600001",
			Course:      "B.E Computer Science",
			Year:        "2nd Year",
		},
		Balance: "150000.00",
	},
	{
		Username: "student2",
		Password: "edu123",
		FullName: "Student2",
		Email:    "student2@school.edu",
		Role:     domain.RoleStudent,
		Profile: domain.Profile{
			Phone:       "+91-9876543220",
			ParentName:  "Parent Two",
			ParentPhone: "+91-9876543221",
			Address:     "456 Park Avenue, Chennai, Tamil Nadu - 600002",
			Course:      "B.E Mechanical Engineering",
			Year:        "3rd Year",
		},
		Balance: "200000.00",
	},
	{
		Username: "admin",
		Password: "admin123",
		FullName: "Admin",
		Email:    "admin@school.edu",
		Role:     domain.RoleAdmin,
		Profile: domain.Profile{
			Phone:   "+91-9876543230",
			Address: "University Campus, Chennai, Tamil Nadu - 600025",
			Course:  "Administration",
		},
		Balance: "500000.00",
	},
	{
		Username: "parent1",
		Password: "parent123",
		FullName: "John Parent",
		Email:    "parent1@email.com",
		Role:     domain.RoleParent,
		Profile:  domain.Profile{Phone: "+91-9876543240"},
		Children: []string{"student1", "student2"},
	},
	{
		Username: "institution1",
		Password: "inst123",
		FullName: "ABC College",
		Email:    "admin@abccollege.edu",
		Role:     domain.RoleInstitution,
		Profile: domain.Profile{
			Phone:   "+91-9876543250",
			Address: "College Street, Chennai",
		},
	},
}

type demoInvoice struct {
	description string
	amount      string
	dueIn       time.Duration
}

var demoInvoices = []demoInvoice{
	{description: "Tuition Fee - Semester 1", amount: "150000.00", dueIn: 15 * 24 * time.Hour},
	{description: "Activity Fee", amount: "12050.00", dueIn: 45 * 24 * time.Hour},
}

// Seed provisions the demo accounts and gives every demo student its invoices.
func Seed(ctx context.Context, ac AccountCreator, ii InvoiceIssuer) error {
	now := time.Now()

	for _, arg := range demoAccounts {
		arg.Passcode = DemoPasscode

		a, err := ac.Create(ctx, arg)
		if err != nil {
			return err
		}

		if a.Role != domain.RoleStudent {
			continue
		}

		for _, inv := range demoInvoices {
			_, err := ii.IssueInvoice(ctx, domain.IssueInvoiceParams{
				Owner:       a.Username,
				Description: inv.description,
				Amount:      inv.amount,
				DueDate:     now.Add(inv.dueIn),
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}
