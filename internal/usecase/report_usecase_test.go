package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
	"github.com/AlHudnitskii/walletledger/internal/usecase/mocks"
)

// currentWeekStart mirrors the report window opening: Monday 00:00 UTC.
func currentWeekStart() time.Time {
	now := time.Now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
}

func zeroReportRepo(ctrl *gomock.Controller) *mocks.MockReportRepository {
	repo := mocks.NewMockReportRepository(ctrl)
	repo.EXPECT().CountUsersRegisteredBefore(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountUsersWithDeposits(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountUsersWithoutTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().SumAmountsByCurrency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[domain.Currency]int64{}, nil).AnyTimes()
	return repo
}

func TestReportUseCase_WeeklyReport_SkipsInactiveWeeks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	thisWeek := currentWeekStart()

	repo := mocks.NewMockReportRepository(ctrl)
	repo.EXPECT().CountUsersRegisteredBefore(gomock.Any(), gomock.Any()).Return(int64(12), nil).AnyTimes()
	repo.EXPECT().CountUsersWithDeposits(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(4), nil).AnyTimes()
	repo.EXPECT().CountUsersWithoutTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(8), nil).AnyTimes()
	repo.EXPECT().CountTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txType domain.TransactionType, from, _ time.Time) (int64, error) {
			if from.Equal(thisWeek) && txType == domain.TransactionTypeDeposit {
				return 3, nil
			}
			return 0, nil
		}).AnyTimes()
	repo.EXPECT().SumAmountsByCurrency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[domain.Currency]int64{}, nil).AnyTimes()

	rates := mocks.NewMockRateProvider(ctrl)

	uc := usecase.NewReportUseCase(repo, rates)

	report, err := uc.WeeklyReport(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Older weeks have no transactions and are dropped; the current week
	// always stays.
	if len(report) != 1 {
		t.Fatalf("expected 1 week, got %d", len(report))
	}

	week := report[0]
	if !week.WeekStart.Equal(thisWeek) {
		t.Errorf("expected week start %v, got %v", thisWeek, week.WeekStart)
	}
	if !week.WeekEnd.Equal(thisWeek.AddDate(0, 0, 7)) {
		t.Errorf("expected week end %v, got %v", thisWeek.AddDate(0, 0, 7), week.WeekEnd)
	}
	if week.DepositCount != 3 {
		t.Errorf("expected 3 deposits, got %d", week.DepositCount)
	}
	if week.RegisteredUsers != 12 {
		t.Errorf("expected 12 registered users, got %d", week.RegisteredUsers)
	}
	if week.UsersWithoutActivity != 8 {
		t.Errorf("expected 8 inactive users, got %d", week.UsersWithoutActivity)
	}
}

func TestReportUseCase_WeeklyReport_ConvertsToUSD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReportRepository(ctrl)
	repo.EXPECT().CountUsersRegisteredBefore(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
	repo.EXPECT().CountUsersWithDeposits(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
	repo.EXPECT().CountUsersWithoutTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil).AnyTimes()
	repo.EXPECT().SumAmountsByCurrency(gomock.Any(), domain.TransactionTypeDeposit, gomock.Any(), gomock.Any()).
		Return(map[domain.Currency]int64{
			domain.CurrencyEUR: 10000,     // 100.00 EUR
			domain.CurrencyBTC: 100000000, // 1 BTC
		}, nil)
	repo.EXPECT().SumAmountsByCurrency(gomock.Any(), domain.TransactionTypeWithdrawal, gomock.Any(), gomock.Any()).
		Return(map[domain.Currency]int64{}, nil)

	rates := mocks.NewMockRateProvider(ctrl)
	rates.EXPECT().RateToUSD(domain.CurrencyEUR).Return(decimal.NewFromFloat(0.9342), nil).AnyTimes()
	rates.EXPECT().RateToUSD(domain.CurrencyBTC).Return(decimal.NewFromInt(100000), nil).AnyTimes()

	uc := usecase.NewReportUseCase(repo, rates)

	report, err := uc.WeeklyReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("expected 1 week, got %d", len(report))
	}

	want := decimal.NewFromFloat(100093.42)
	if !report[0].DepositsTotalUSD.Equal(want) {
		t.Errorf("expected deposits total %s, got %s", want, report[0].DepositsTotalUSD)
	}
	if !report[0].WithdrawalsTotalUSD.IsZero() {
		t.Errorf("expected zero withdrawals total, got %s", report[0].WithdrawalsTotalUSD)
	}
}

func TestReportUseCase_WeeklyReport_CachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := zeroReportRepo(ctrl)
	rates := mocks.NewMockRateProvider(ctrl)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "report:weekly:2").Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), "report:weekly:2", gomock.Any(), usecase.ReportCacheTTL).Return(nil)

	uc := usecase.NewReportUseCase(repo, rates).WithCache(cache)

	if _, err := uc.WeeklyReport(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportUseCase_WeeklyReport_CacheHitSkipsAggregation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	thisWeek := currentWeekStart()
	cached := []*usecase.WeeklyReportEntry{
		{
			WeekStart:           thisWeek,
			WeekEnd:             thisWeek.AddDate(0, 0, 7),
			DepositCount:        9,
			DepositsTotalUSD:    decimal.NewFromFloat(12.34),
			WithdrawalsTotalUSD: decimal.Zero,
		},
	}
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No repository expectations: a cache hit must not run any queries.
	repo := mocks.NewMockReportRepository(ctrl)
	rates := mocks.NewMockRateProvider(ctrl)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "report:weekly:2").Return(data, nil)

	uc := usecase.NewReportUseCase(repo, rates).WithCache(cache)

	report, err := uc.WeeklyReport(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("expected 1 cached week, got %d", len(report))
	}
	if report[0].DepositCount != 9 {
		t.Errorf("expected cached deposit count 9, got %d", report[0].DepositCount)
	}
}

func TestReportUseCase_WeeklyReport_ClampsWindow(t *testing.T) {
	tests := []struct {
		name      string
		weeksBack int
		wantWeeks int
	}{
		{"zero falls back to default", 0, usecase.DefaultReportWeeks},
		{"negative falls back to default", -3, usecase.DefaultReportWeeks},
		{"above cap is clamped", 200, usecase.MaxReportWeeks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var windows int
			repo := mocks.NewMockReportRepository(ctrl)
			repo.EXPECT().CountUsersRegisteredBefore(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ time.Time) (int64, error) {
					windows++
					return 0, nil
				}).AnyTimes()
			repo.EXPECT().CountUsersWithDeposits(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
			repo.EXPECT().CountUsersWithoutTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
			repo.EXPECT().CountTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
			repo.EXPECT().SumAmountsByCurrency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[domain.Currency]int64{}, nil).AnyTimes()

			uc := usecase.NewReportUseCase(repo, mocks.NewMockRateProvider(ctrl))

			if _, err := uc.WeeklyReport(context.Background(), tt.weeksBack); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if windows != tt.wantWeeks {
				t.Errorf("expected %d aggregated weeks, got %d", tt.wantWeeks, windows)
			}
		})
	}
}
