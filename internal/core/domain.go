package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	StatusPaid    TransactionStatus = "paid"
	StatusPending TransactionStatus = "pending"
	StatusOverdue TransactionStatus = "overdue"
)

type (
	TransactionType   string
	TransactionStatus string

	Date struct {
		time.Time
	}

	// FamilyMember is a person whose transactions are tracked on the dashboard.
	FamilyMember struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar,omitempty"`
		Color  string `json:"color"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color"`
		Icon  string          `json:"icon,omitempty"`
	}

	BankAccount struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Bank          string `json:"bank"`
		Balance       Money  `json:"balance"` // signed: overdrafts are negative
		AccountNumber string `json:"accountNumber"`
		Color         string `json:"color"`
	}

	CreditCard struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Bank       string `json:"bank"`
		Limit      Money  `json:"limit"`
		Balance    Money  `json:"balance"` // current statement balance, never negative
		ClosingDay int    `json:"closingDay"`
		DueDay     int    `json:"dueDay"`
		LastFour   string `json:"lastFour"`
		Color      string `json:"color"`
	}

	// Installment tracks position within an installment plan (1-based).
	Installment struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	}

	// Transaction is a single income or expense movement. It may settle
	// against at most one funding source: a bank account or a credit card.
	Transaction struct {
		ID           string            `json:"id"`
		MemberID     string            `json:"memberId"`
		Date         Date              `json:"date"`
		Description  string            `json:"description"`
		Amount       Money             `json:"amount"` // magnitude, always positive
		Type         TransactionType   `json:"type"`
		CategoryID   string            `json:"categoryId"`
		AccountID    string            `json:"accountId,omitempty"`
		CreditCardID string            `json:"creditCardId,omitempty"`
		Installment  *Installment      `json:"installment,omitempty"`
		Status       TransactionStatus `json:"status"`
		Notes        string            `json:"notes,omitempty"`
	}

	Goal struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Target   Money  `json:"target"`
		Current  Money  `json:"current"`
		Deadline Date   `json:"deadline"`
		Color    string `json:"color"`
		Icon     string `json:"icon,omitempty"`
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidRange       = errors.New("start date after end date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyDescription   = errors.New("empty description")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidStatus      = errors.New("invalid transaction status")
	ErrInvalidDay         = errors.New("invalid day of month")
	ErrInvalidInstallment = errors.New("invalid installment")
	ErrTwoFundingSources  = errors.New("transaction cannot settle against both an account and a card")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (s TransactionStatus) Validate() error {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (i Installment) Validate() error {
	if i.Total < 1 || i.Current < 1 || i.Current > i.Total {
		return ErrInvalidInstallment
	}
	return nil
}

func (m FamilyMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return c.Type.Validate()
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c CreditCard) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Limit.Cents <= 0 {
		return ErrInvalidAmount
	}
	if c.Balance.Cents < 0 {
		return ErrInvalidAmount
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

// UsagePercent is the statement balance as a share of the limit,
// clamped to [0, 100] for display.
func (c CreditCard) UsagePercent() float64 {
	if c.Limit.Cents <= 0 {
		return 0
	}
	p := float64(c.Balance.Cents) / float64(c.Limit.Cents) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if t.AccountID != "" && t.CreditCardID != "" {
		return ErrTwoFundingSources
	}
	if t.Installment != nil {
		if err := t.Installment.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.Current.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Progress is the share of the target already saved, as a percentage.
// It is not clamped: an overfunded goal reports more than 100.
func (g Goal) Progress() float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	return float64(g.Current.Cents) / float64(g.Target.Cents) * 100
}
