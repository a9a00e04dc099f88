package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/expensetracker/internal/domain"
)

// SummaryResult is the headline totals, optionally rescaled into a display currency.
// Currency is empty when the figures are in the base unit.
type SummaryResult struct {
	domain.Summary
	Currency string
}

// SummaryUseCase computes totals and insights from fresh entry snapshots.
type SummaryUseCase struct {
	entries   EntryLister
	converter AmountConverter
}

// NewSummaryUseCase creates a new SummaryUseCase. converter may be nil, in which
// case every conversion request fails with *domain.UnknownCurrencyError.
func NewSummaryUseCase(entries EntryLister, converter AmountConverter) *SummaryUseCase {
	return &SummaryUseCase{
		entries:   entries,
		converter: converter,
	}
}

// Summary returns total income, total spending and net savings. When currency is
// non-empty every figure is converted with the current rate table.
func (uc *SummaryUseCase) Summary(ctx context.Context, currency string) (*SummaryResult, error) {
	incomes, expenses, err := uc.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	result := &SummaryResult{Summary: domain.Summarize(incomes, expenses)}
	if currency == "" {
		return result, nil
	}

	code, ok := domain.NormalizeCurrencyCode(currency)
	if !ok || uc.converter == nil {
		return nil, &domain.UnknownCurrencyError{Code: currency}
	}

	converted := domain.Summary{}
	for _, f := range []struct {
		dst *decimal.Decimal
		src decimal.Decimal
	}{
		{&converted.TotalIncome, result.TotalIncome},
		{&converted.TotalSpending, result.TotalSpending},
		{&converted.NetSavings, result.NetSavings},
	} {
		v, err := uc.converter.Convert(f.src, code)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return &SummaryResult{Summary: converted, Currency: code}, nil
}

// Insights returns the top-n ranking of expenses along with spending feedback.
func (uc *SummaryUseCase) Insights(ctx context.Context, n int) (domain.Insight, error) {
	if n < 0 || n > MaxTopSpendingCount {
		return domain.Insight{}, &domain.ValidationError{
			Field:  "top",
			Reason: fmt.Sprintf("must be between 0 and %d", MaxTopSpendingCount),
		}
	}

	expenses, err := uc.entries.ListAll(ctx, domain.VariantExpense)
	if err != nil {
		return domain.Insight{}, err
	}

	return domain.BuildInsight(expenses, n), nil
}

// Categories returns spending grouped by category, largest first.
func (uc *SummaryUseCase) Categories(ctx context.Context) ([]domain.CategoryTotal, error) {
	expenses, err := uc.entries.ListAll(ctx, domain.VariantExpense)
	if err != nil {
		return nil, err
	}
	return domain.TotalsByCategory(expenses), nil
}

func (uc *SummaryUseCase) snapshots(ctx context.Context) (incomes, expenses []*domain.Entry, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		incomes, err = uc.entries.ListAll(gctx, domain.VariantIncome)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = uc.entries.ListAll(gctx, domain.VariantExpense)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}
