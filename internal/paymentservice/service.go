// Package paymentservice creates gateway orders and credits verified payments.
//
// The amount credited is always the amount recorded when the order was
// created, never a value sent by the client at confirmation time, and an
// order is credited at most once.
package paymentservice

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// Gateway is a payment gateway adapter.
//
//go:generate mockgen -source service.go -destination service_mock.go -package paymentservice
type Gateway interface {
	Info() domain.Gateway
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (domain.Order, error)
	Verify(ctx context.Context, order domain.Order, proof domain.PaymentProof) (bool, error)
}

// Ledger credits verified payments.
type Ledger interface {
	RecordCredit(ctx context.Context, username, amount string, arg domain.PostParams) (domain.Transaction, error)
}

// Accounts looks up payers and beneficiaries.
type Accounts interface {
	Get(ctx context.Context, username string) (domain.Account, error)
}

// Limits bounds the amount of a single order.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Service facilitates payment service layer logic.
type Service struct {
	gateways map[string]Gateway
	book     *orderBook
	ledger   Ledger
	accounts Accounts
	currency string
	limits   Limits
	now      func() time.Time
}

// New returns payment service struct to manage payment bussines logic.
func New(l Ledger, a Accounts, currency string, limits Limits, gateways ...Gateway) *Service {
	s := &Service{
		gateways: make(map[string]Gateway, len(gateways)),
		book:     newOrderBook(),
		ledger:   l,
		accounts: a,
		currency: currency,
		limits:   limits,
		now:      time.Now,
	}

	for _, g := range gateways {
		s.gateways[g.Info().ID] = g
	}

	return s
}

// Gateways lists the configured gateways ordered by id.
func (s *Service) Gateways() []domain.Gateway {
	result := make([]domain.Gateway, 0, len(s.gateways))
	for _, g := range s.gateways {
		result = append(result, g.Info())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// beneficiary resolves whose balance an order of payer credits.
// Students pay for themselves, parents for one of their children.
func (s *Service) beneficiary(ctx context.Context, payer, requested string) (string, error) {
	p, err := s.accounts.Get(ctx, payer)
	if err != nil {
		return "", err
	}

	switch p.Role {
	case domain.RoleStudent:
		if requested != "" && requested != payer {
			return "", domain.ErrUnauthorized
		}

		return payer, nil
	case domain.RoleParent:
		if !p.HasChild(requested) {
			return "", domain.ErrUnauthorized
		}

		return requested, nil
	}

	return "", domain.ErrUnauthorized
}

// CreateOrder creates an order on the gateway and remembers it for confirmation.
func (s *Service) CreateOrder(ctx context.Context, payer, gatewayID, beneficiary, amount string) (domain.Order, error) {
	l := zerolog.Ctx(ctx)

	g, ok := s.gateways[gatewayID]
	if !ok {
		return domain.Order{}, domain.ErrUnsupportedGateway
	}

	a, err := moneypkg.Parse(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.Order{}, domain.ErrInvalidAmount
	}

	if a.LessThan(s.limits.Min) || (s.limits.Max.IsPositive() && a.GreaterThan(s.limits.Max)) {
		return domain.Order{}, domain.ErrInvalidAmount
	}

	target, err := s.beneficiary(ctx, payer, beneficiary)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.now()
	receipt := "receipt_" + now.Format("20060102_150405")

	order, err := g.CreateOrder(ctx, a, s.currency, receipt)
	if err != nil {
		l.Error().Err(err).Str("gateway", gatewayID).Msg("cannot create gateway order")
		return domain.Order{}, errorspkg.ErrInternal
	}

	order.Gateway = gatewayID
	order.Payer = payer
	order.Beneficiary = target
	order.Amount = a
	order.Currency = s.currency
	order.CreatedAt = now

	s.book.put(order, now)

	l.Info().
		Str("gateway", gatewayID).
		Str("reference", order.Reference).
		Str("beneficiary", target).
		Msg("order created")

	return order, nil
}

// Confirm verifies the payment of an order created by payer and credits the
// recorded amount to the order's beneficiary.
func (s *Service) Confirm(ctx context.Context, payer, gatewayID, reference string, proof domain.PaymentProof) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	g, ok := s.gateways[gatewayID]
	if !ok {
		return domain.Transaction{}, domain.ErrUnsupportedGateway
	}

	order, ok := s.book.claim(gatewayID, reference, payer, s.now())
	if !ok {
		return domain.Transaction{}, domain.ErrOrderNotFound
	}

	verified, err := g.Verify(ctx, order, proof)
	if err != nil {
		s.book.release(order)
		l.Error().Err(err).Str("gateway", gatewayID).Str("reference", reference).Msg("cannot verify payment")

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	if !verified {
		s.book.release(order)
		l.Warn().Str("gateway", gatewayID).Str("reference", reference).Msg("payment verification failed")

		return domain.Transaction{}, domain.ErrPaymentNotVerified
	}

	paymentID := proof.PaymentID
	if paymentID == "" {
		paymentID = reference
	}

	tx, err := s.ledger.RecordCredit(ctx, order.Beneficiary, moneypkg.Format(order.Amount), domain.PostParams{
		Description:       "Online Payment via " + g.Info().Name,
		Gateway:           gatewayID,
		ExternalPaymentID: paymentID,
	})
	if err != nil {
		s.book.release(order)
		return domain.Transaction{}, err
	}

	s.book.complete(order)

	return tx, nil
}
