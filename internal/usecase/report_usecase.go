package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

const (
	// DefaultReportWeeks is used when the caller does not say how far back to go
	DefaultReportWeeks = 4

	// MaxReportWeeks caps the aggregation window
	MaxReportWeeks = 52
)

// ReportUseCase builds read-only weekly activity reports. Totals are
// converted to USD for presentation; the ledger itself never converts.
type ReportUseCase struct {
	reportRepo ReportRepository
	rates      RateProvider
	cache      Cache
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(reportRepo ReportRepository, rates RateProvider) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		rates:      rates,
	}
}

// WithCache caches generated reports for ReportCacheTTL.
func (uc *ReportUseCase) WithCache(cache Cache) *ReportUseCase {
	uc.cache = cache
	return uc
}

// WeeklyReportEntry represents one week of activity, Monday to Monday UTC.
type WeeklyReportEntry struct {
	WeekStart            time.Time       `json:"week_start"`
	WeekEnd              time.Time       `json:"week_end"`
	RegisteredUsers      int64           `json:"registered_users"`
	UsersWithDeposits    int64           `json:"users_with_deposits"`
	UsersWithoutActivity int64           `json:"users_without_activity"`
	DepositCount         int64           `json:"deposit_count"`
	WithdrawalCount      int64           `json:"withdrawal_count"`
	RollbackCount        int64           `json:"rollback_count"`
	DepositsTotalUSD     decimal.Decimal `json:"deposits_total_usd"`
	WithdrawalsTotalUSD  decimal.Decimal `json:"withdrawals_total_usd"`
}

// WeeklyReport aggregates the last weeksBack weeks, newest first. The
// current week is always present; older weeks without any transactions
// are skipped.
func (uc *ReportUseCase) WeeklyReport(ctx context.Context, weeksBack int) ([]*WeeklyReportEntry, error) {
	if weeksBack <= 0 {
		weeksBack = DefaultReportWeeks
	}
	if weeksBack > MaxReportWeeks {
		weeksBack = MaxReportWeeks
	}

	cacheKey := fmt.Sprintf("report:weekly:%d", weeksBack)
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached []*WeeklyReportEntry
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	now := time.Now().UTC()
	start := weekStart(now)

	var report []*WeeklyReportEntry
	for week := 0; week < weeksBack; week++ {
		from := start.AddDate(0, 0, -7*week)
		to := from.AddDate(0, 0, 7)

		entry, err := uc.buildWeek(ctx, from, to)
		if err != nil {
			return nil, err
		}

		hasActivity := entry.DepositCount+entry.WithdrawalCount+entry.RollbackCount > 0
		if week > 0 && !hasActivity {
			continue
		}

		report = append(report, entry)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, data, ReportCacheTTL)
		}
	}

	return report, nil
}

func (uc *ReportUseCase) buildWeek(ctx context.Context, from, to time.Time) (*WeeklyReportEntry, error) {
	entry := &WeeklyReportEntry{
		WeekStart:           from,
		WeekEnd:             to,
		DepositsTotalUSD:    decimal.Zero,
		WithdrawalsTotalUSD: decimal.Zero,
	}

	var err error
	if entry.RegisteredUsers, err = uc.reportRepo.CountUsersRegisteredBefore(ctx, to); err != nil {
		return nil, err
	}

	if entry.UsersWithDeposits, err = uc.reportRepo.CountUsersWithDeposits(ctx, from, to); err != nil {
		return nil, err
	}

	if entry.UsersWithoutActivity, err = uc.reportRepo.CountUsersWithoutTransactions(ctx, from, to); err != nil {
		return nil, err
	}

	if entry.DepositCount, err = uc.reportRepo.CountTransactions(ctx, domain.TransactionTypeDeposit, from, to); err != nil {
		return nil, err
	}

	if entry.WithdrawalCount, err = uc.reportRepo.CountTransactions(ctx, domain.TransactionTypeWithdrawal, from, to); err != nil {
		return nil, err
	}

	if entry.RollbackCount, err = uc.reportRepo.CountTransactions(ctx, domain.TransactionTypeRollback, from, to); err != nil {
		return nil, err
	}

	if entry.DepositsTotalUSD, err = uc.sumUSD(ctx, domain.TransactionTypeDeposit, from, to); err != nil {
		return nil, err
	}

	if entry.WithdrawalsTotalUSD, err = uc.sumUSD(ctx, domain.TransactionTypeWithdrawal, from, to); err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *ReportUseCase) sumUSD(ctx context.Context, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	sums, err := uc.reportRepo.SumAmountsByCurrency(ctx, txType, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for currency, amount := range sums {
		rate, err := uc.rates.RateToUSD(currency)
		if err != nil {
			return decimal.Zero, err
		}

		m := domain.Money{Currency: currency, Amount: amount}
		total = total.Add(m.Decimal().Mul(rate))
	}

	return total.Round(2), nil
}

// weekStart returns the Monday 00:00 UTC opening t's week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
