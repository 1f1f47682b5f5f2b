package ledgerservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/metrics"
)

// FeeStructure returns every fee class ordered by course and year.
func (s *Service) FeeStructure(ctx context.Context) (domain.FeeStructure, error) {
	return s.fees.Structure(ctx)
}

// UpdateFee sets one fee of an existing course and year. Unknown fee types
// are added to the class.
func (s *Service) UpdateFee(ctx context.Context, arg domain.UpdateFeeParams) (domain.FeeClass, error) {
	feeType := strings.ToLower(strings.TrimSpace(arg.FeeType))
	if !domain.ValidFeeType(feeType) {
		return domain.FeeClass{}, domain.ErrInvalidFeeType
	}

	a, err := parseAmount(ctx, arg.Amount)
	if err != nil {
		metrics.ObserveLedger("update_fee", err)
		return domain.FeeClass{}, err
	}

	class, err := s.fees.SetFee(ctx, strings.TrimSpace(arg.Course), strings.TrimSpace(arg.Year), feeType, a)

	metrics.ObserveLedger("update_fee", err)

	if err != nil {
		return domain.FeeClass{}, err
	}

	l := zerolog.Ctx(ctx)
	l.Info().
		Str("course", class.Course).
		Str("year", class.Year).
		Str("fee_type", feeType).
		Str("amount", a.String()).
		Msg("fee updated")

	return class, nil
}

func (s *Service) scheduledFee(ctx context.Context, student domain.Account, feeType string) (decimal.Decimal, error) {
	class, err := s.fees.Class(ctx, student.Profile.Course, student.Profile.Year)
	if err == domain.ErrFeeClassNotFound {
		return decimal.Zero, domain.ErrFeeNotFound
	}

	if err != nil {
		return decimal.Zero, err
	}

	fee, ok := class.Fees[feeType]
	if !ok || !fee.IsPositive() {
		return decimal.Zero, domain.ErrFeeNotFound
	}

	return fee, nil
}
