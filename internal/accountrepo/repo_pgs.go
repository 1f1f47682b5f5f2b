// Package accountrepo persists account records.
package accountrepo

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/dbpkg"
	"github.com/go-petr/edupay/pkg/errorspkg"
)

// RepoPGS stores account records in PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const listQuery = `
SELECT
    username, hashed_password, hashed_passcode, full_name, email,
    role, is_admin, profile, children, balance, created_at
FROM accounts
ORDER BY username
`

// List returns every stored account.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	var result []domain.Account

	for rows.Next() {
		var (
			a       domain.Account
			role    string
			profile []byte
		)

		err := rows.Scan(
			&a.Username,
			&a.HashedPassword,
			&a.HashedPasscode,
			&a.FullName,
			&a.Email,
			&role,
			&a.IsAdmin,
			&profile,
			pq.Array(&a.Children),
			&a.Balance,
			&a.CreatedAt,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if err := json.Unmarshal(profile, &a.Profile); err != nil {
			l.Error().Err(err).Str("username", a.Username).Msg("cannot decode profile")
			return nil, errorspkg.ErrInternal
		}

		a.Role = domain.Role(role)
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return result, nil
}

const saveQuery = `
INSERT INTO accounts (
    username, hashed_password, hashed_passcode, full_name, email,
    role, is_admin, profile, children, balance, created_at
) VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (username) DO UPDATE SET
    hashed_password = EXCLUDED.hashed_password,
    hashed_passcode = EXCLUDED.hashed_passcode,
    full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    is_admin = EXCLUDED.is_admin,
    profile = EXCLUDED.profile,
    children = EXCLUDED.children,
    balance = EXCLUDED.balance
`

// Save inserts the account or overwrites the stored record.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) error {
	l := zerolog.Ctx(ctx)

	profile, err := json.Marshal(a.Profile)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	children := a.Children
	if children == nil {
		children = []string{}
	}

	_, err = r.db.ExecContext(ctx, saveQuery,
		a.Username,
		a.HashedPassword,
		a.HashedPasscode,
		a.FullName,
		a.Email,
		string(a.Role),
		a.IsAdmin,
		profile,
		pq.Array(children),
		a.Balance,
		a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "accounts_balance_check" {
			return domain.ErrInsufficientBalance
		}

		return errorspkg.ErrInternal
	}

	return nil
}
