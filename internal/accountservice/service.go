// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/guard"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/moneypkg"
	"github.com/go-petr/edupay/pkg/passpkg"
	"github.com/go-petr/edupay/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	Get(ctx context.Context, username string) (domain.Account, error)
	Update(ctx context.Context, username string, fn func(domain.Account) (domain.Account, error)) (domain.Account, error)
}

// Verifier checks secrets under a failed-attempt limit.
type Verifier interface {
	Allow(ctx context.Context, key string) error
	Verify(ctx context.Context, key, plain, hashed string, mismatchErr error) error
}

// SupportInbox stores the support messages sent to the admins.
type SupportInbox interface {
	Add(ctx context.Context, m domain.SupportMessage) (domain.SupportMessage, error)
	ReadAll(ctx context.Context) ([]domain.SupportMessage, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	hasher passpkg.Hasher
	guard  Verifier
	inbox  SupportInbox
	// decoy is checked for unknown usernames so that they cost the same and count as failures.
	decoy string
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, h passpkg.Hasher, g Verifier, in SupportInbox) (*Service, error) {
	decoy, err := h.Hash(randompkg.String(16))
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:   ar,
		hasher: h,
		guard:  g,
		inbox:  in,
		decoy:  decoy,
	}, nil
}

// Create provisions an account. Passwords and passcodes are stored hashed only.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountWithoutSecrets, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AccountWithoutSecrets

	if !arg.Role.Valid() {
		return result, domain.ErrInvalidRole
	}

	if len(arg.Password) < domain.MinPasswordLen {
		return result, domain.ErrWeakPassword
	}

	if arg.Passcode != "" && !domain.ValidPasscode(arg.Passcode) || arg.Passcode == "" && arg.Role == domain.RoleStudent {
		return result, domain.ErrInvalidPasscodeFormat
	}

	balance, err := moneypkg.ParseNonNegative(arg.Balance)
	if err != nil {
		return result, domain.ErrInvalidAmount
	}

	for _, child := range arg.Children {
		c, err := s.repo.Get(ctx, child)
		if err != nil {
			return result, err
		}

		if c.Role != domain.RoleStudent {
			return result, domain.ErrNotAStudent
		}
	}

	hashedPassword, err := s.hasher.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	var hashedPasscode string
	if arg.Passcode != "" {
		hashedPasscode, err = s.hasher.Hash(arg.Passcode)
		if err != nil {
			l.Error().Err(err).Send()
			return result, errorspkg.ErrInternal
		}
	}

	a := domain.Account{
		Username:       arg.Username,
		HashedPassword: hashedPassword,
		HashedPasscode: hashedPasscode,
		FullName:       strings.TrimSpace(arg.FullName),
		Email:          strings.TrimSpace(arg.Email),
		Role:           arg.Role,
		IsAdmin:        arg.Role == domain.RoleAdmin,
		Profile:        arg.Profile,
		Children:       arg.Children,
		Balance:        balance,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return result, err
	}

	l.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("account created")

	return created.WithoutSecrets(), nil
}

// CheckPassword checks the password of username through the login guard.
// Unknown usernames fail the same way as wrong passwords.
func (s *Service) CheckPassword(ctx context.Context, username, password, clientIP string) (domain.AccountWithoutSecrets, error) {
	var result domain.AccountWithoutSecrets

	key := guard.Key(guard.ScopeLogin, username, clientIP)

	if err := s.guard.Allow(ctx, key); err != nil {
		return result, err
	}

	a, err := s.repo.Get(ctx, username)
	if err == domain.ErrAccountNotFound {
		if err := s.guard.Verify(ctx, key, password, s.decoy, domain.ErrWrongPassword); err != nil {
			return result, err
		}

		return result, domain.ErrWrongPassword
	}

	if err != nil {
		return result, err
	}

	if err := s.guard.Verify(ctx, key, password, a.HashedPassword, domain.ErrWrongPassword); err != nil {
		return result, err
	}

	return a.WithoutSecrets(), nil
}

// Get returns the account without its secrets.
func (s *Service) Get(ctx context.Context, username string) (domain.AccountWithoutSecrets, error) {
	a, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.AccountWithoutSecrets{}, err
	}

	return a.WithoutSecrets(), nil
}

// ChangePassword replaces the password after the current one is verified.
func (s *Service) ChangePassword(ctx context.Context, username, clientIP, current, next string) error {
	if len(next) < domain.MinPasswordLen {
		return domain.ErrWeakPassword
	}

	key := guard.Key(guard.ScopeLogin, username, clientIP)

	_, err := s.repo.Update(ctx, username, func(a domain.Account) (domain.Account, error) {
		if err := s.guard.Verify(ctx, key, current, a.HashedPassword, domain.ErrWrongPassword); err != nil {
			return a, err
		}

		hashed, err := s.hasher.Hash(next)
		if err != nil {
			l := zerolog.Ctx(ctx)
			l.Error().Err(err).Send()

			return a, errorspkg.ErrInternal
		}

		a.HashedPassword = hashed

		return a, nil
	})

	return err
}

// ChangePasscode replaces the payment passcode after the current one is verified.
// Accounts provisioned without a passcode set their first one without current.
func (s *Service) ChangePasscode(ctx context.Context, username, clientIP, current, next string) error {
	if !domain.ValidPasscode(next) {
		return domain.ErrInvalidPasscodeFormat
	}

	key := guard.Key(guard.ScopePasscode, username, clientIP)

	_, err := s.repo.Update(ctx, username, func(a domain.Account) (domain.Account, error) {
		if a.HashedPasscode != "" {
			if err := s.guard.Verify(ctx, key, current, a.HashedPasscode, domain.ErrWrongPasscode); err != nil {
				return a, err
			}
		}

		hashed, err := s.hasher.Hash(next)
		if err != nil {
			l := zerolog.Ctx(ctx)
			l.Error().Err(err).Send()

			return a, errorspkg.ErrInternal
		}

		a.HashedPasscode = hashed

		return a, nil
	})

	return err
}
