package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// AccountResponse represents an account in API responses. Balance is in
// major units of the currency.
type AccountResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Currency  string          `json:"currency"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Currency:  a.Currency.String(),
		Kind:      string(a.Kind),
		Status:    string(a.Status),
		Balance:   a.Money().Decimal(),
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents one currency balance in API responses.
type BalanceResponse struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	At       *time.Time      `json:"at,omitempty"`
}

// BalanceFromMoney converts a money value to a response.
func BalanceFromMoney(m domain.Money) *BalanceResponse {
	return &BalanceResponse{
		Currency: m.Currency.String(),
		Balance:  m.Decimal(),
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"user_id"`
	AccountID             string          `json:"account_id,omitempty"`
	Type                  string          `json:"type"`
	Status                string          `json:"status"`
	Currency              string          `json:"currency"`
	Amount                decimal.Decimal `json:"amount"`
	ReversesTransactionID *string         `json:"reverses_transaction_id,omitempty"`
	FailureReason         string          `json:"failure_reason,omitempty"`
	Metadata              map[string]any  `json:"metadata,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                    t.ID,
		UserID:                t.UserID,
		AccountID:             t.AccountID,
		Type:                  string(t.Type),
		Status:                string(t.Status),
		Currency:              t.Currency.String(),
		Amount:                t.Money().Decimal(),
		ReversesTransactionID: t.ReversesTransactionID,
		FailureReason:         t.FailureReason,
		Metadata:              t.Metadata,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	Currency        string          `json:"currency"`
	Direction       string          `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AccountVersion  int64           `json:"account_version"`
	Seq             int32           `json:"seq"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		TransactionID:   e.TransactionID,
		AccountID:       e.AccountID,
		Currency:        e.Currency.String(),
		Direction:       string(e.Direction),
		Amount:          domain.Money{Currency: e.Currency, Amount: e.Amount}.Decimal(),
		PreviousBalance: domain.Money{Currency: e.Currency, Amount: e.PreviousBalance}.Decimal(),
		CurrentBalance:  domain.Money{Currency: e.Currency, Amount: e.CurrentBalance}.Decimal(),
		AccountVersion:  e.AccountVersion,
		Seq:             e.Seq,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// OutboxEventResponse represents an outbox event in API responses.
type OutboxEventResponse struct {
	ID            string         `json:"id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload,omitempty"`
	Status        string         `json:"status"`
	RetryCount    int32          `json:"retry_count"`
	CreatedAt     time.Time      `json:"created_at"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
}

// OutboxEventFromDomain converts a domain outbox event to a response.
func OutboxEventFromDomain(e *domain.OutboxEvent) *OutboxEventResponse {
	return &OutboxEventResponse{
		ID:            e.ID,
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		EventType:     e.EventType,
		Payload:       e.Payload,
		Status:        string(e.Status),
		RetryCount:    e.RetryCount,
		CreatedAt:     e.CreatedAt,
		PublishedAt:   e.PublishedAt,
	}
}

// OutboxEventsFromDomain converts domain outbox events to responses.
func OutboxEventsFromDomain(events []*domain.OutboxEvent) []*OutboxEventResponse {
	result := make([]*OutboxEventResponse, len(events))
	for i, e := range events {
		result[i] = OutboxEventFromDomain(e)
	}
	return result
}

// ReconciliationResultResponse represents one account's reconciliation
// outcome. Balances are in major units.
type ReconciliationResultResponse struct {
	AccountID         string          `json:"account_id"`
	Currency          string          `json:"currency"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationResultFromUseCase converts a reconciliation result to a response.
func ReconciliationResultFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResultResponse {
	return &ReconciliationResultResponse{
		AccountID:         r.AccountID,
		Currency:          r.Currency.String(),
		RecordedBalance:   domain.Money{Currency: r.Currency, Amount: r.RecordedBalance}.Decimal(),
		CalculatedBalance: domain.Money{Currency: r.Currency, Amount: r.CalculatedBalance}.Decimal(),
		Difference:        domain.Money{Currency: r.Currency, Amount: r.Difference}.Decimal(),
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationResultsFromUseCase converts reconciliation results to responses.
func ReconciliationResultsFromUseCase(results []*usecase.ReconciliationResult) []*ReconciliationResultResponse {
	out := make([]*ReconciliationResultResponse, len(results))
	for i, r := range results {
		out[i] = ReconciliationResultFromUseCase(r)
	}
	return out
}

// ConsistencyReportResponse represents a ledger-wide consistency check.
// Currency totals are raw minor units: anything non-zero is a defect,
// so no major-unit formatting is applied.
type ConsistencyReportResponse struct {
	Consistent             bool                            `json:"consistent"`
	CurrencyTotals         map[string]int64                `json:"currency_totals"`
	UnbalancedTransactions []string                        `json:"unbalanced_transactions"`
	MismatchedAccounts     []*ReconciliationResultResponse `json:"mismatched_accounts"`
	TotalAccounts          int                             `json:"total_accounts"`
	CheckedAt              time.Time                       `json:"checked_at"`
}

// ConsistencyReportFromUseCase converts a consistency report to a response.
func ConsistencyReportFromUseCase(r *usecase.ConsistencyReport) *ConsistencyReportResponse {
	totals := make(map[string]int64, len(r.CurrencyTotals))
	for currency, total := range r.CurrencyTotals {
		totals[currency.String()] = total
	}

	return &ConsistencyReportResponse{
		Consistent:             r.Consistent,
		CurrencyTotals:         totals,
		UnbalancedTransactions: r.UnbalancedTransactions,
		MismatchedAccounts:     ReconciliationResultsFromUseCase(r.MismatchedAccounts),
		TotalAccounts:          r.TotalAccounts,
		CheckedAt:              r.CheckedAt,
	}
}

// WeeklyReportResponse wraps the weekly activity report.
type WeeklyReportResponse struct {
	Weeks       []*usecase.WeeklyReportEntry `json:"weeks"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// ListUsersResponse represents a list of users.
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse represents a list of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ListEntriesResponse represents a list of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// ListOutboxEventsResponse represents a list of outbox events.
type ListOutboxEventsResponse struct {
	Events []*OutboxEventResponse `json:"events"`
	Total  int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
