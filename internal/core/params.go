package core

// Creation and update payloads for the mutation API. Ids are never part of
// a payload: they are assigned at creation and immutable afterwards.
// Update params use pointer fields; nil means "leave unchanged".

type (
	CreateMemberParams struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
		Color  string `json:"color"`
	}

	UpdateMemberParams struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Avatar *string `json:"avatar"`
		Color  *string `json:"color"`
	}

	CreateCategoryParams struct {
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color"`
		Icon  string          `json:"icon"`
	}

	UpdateCategoryParams struct {
		Name  *string          `json:"name"`
		Type  *TransactionType `json:"type"`
		Color *string          `json:"color"`
		Icon  *string          `json:"icon"`
	}

	CreateAccountParams struct {
		Name          string `json:"name"`
		Bank          string `json:"bank"`
		BalanceCents  int64  `json:"balanceCents"`
		AccountNumber string `json:"accountNumber"`
		Color         string `json:"color"`
	}

	UpdateAccountParams struct {
		Name          *string `json:"name"`
		Bank          *string `json:"bank"`
		BalanceCents  *int64  `json:"balanceCents"`
		AccountNumber *string `json:"accountNumber"`
		Color         *string `json:"color"`
	}

	CreateCardParams struct {
		Name         string `json:"name"`
		Bank         string `json:"bank"`
		LimitCents   int64  `json:"limitCents"`
		BalanceCents int64  `json:"balanceCents"`
		ClosingDay   int    `json:"closingDay"`
		DueDay       int    `json:"dueDay"`
		LastFour     string `json:"lastFour"`
		Color        string `json:"color"`
	}

	UpdateCardParams struct {
		Name         *string `json:"name"`
		Bank         *string `json:"bank"`
		LimitCents   *int64  `json:"limitCents"`
		BalanceCents *int64  `json:"balanceCents"`
		ClosingDay   *int    `json:"closingDay"`
		DueDay       *int    `json:"dueDay"`
		LastFour     *string `json:"lastFour"`
		Color        *string `json:"color"`
	}

	CreateTransactionParams struct {
		MemberID     string            `json:"memberId"`
		Date         Date              `json:"date"`
		Description  string            `json:"description"`
		AmountCents  int64             `json:"amountCents"`
		Type         TransactionType   `json:"type"`
		CategoryID   string            `json:"categoryId"`
		AccountID    string            `json:"accountId"`
		CreditCardID string            `json:"creditCardId"`
		Installment  *Installment      `json:"installment"`
		Status       TransactionStatus `json:"status"`
		Notes        string            `json:"notes"`
	}

	UpdateTransactionParams struct {
		MemberID     *string            `json:"memberId"`
		Date         *Date              `json:"date"`
		Description  *string            `json:"description"`
		AmountCents  *int64             `json:"amountCents"`
		Type         *TransactionType   `json:"type"`
		CategoryID   *string            `json:"categoryId"`
		AccountID    *string            `json:"accountId"`
		CreditCardID *string            `json:"creditCardId"`
		Installment  *Installment       `json:"installment"`
		Status       *TransactionStatus `json:"status"`
		Notes        *string            `json:"notes"`
	}

	CreateGoalParams struct {
		Name         string `json:"name"`
		TargetCents  int64  `json:"targetCents"`
		CurrentCents int64  `json:"currentCents"`
		Deadline     Date   `json:"deadline"`
		Color        string `json:"color"`
		Icon         string `json:"icon"`
	}

	UpdateGoalParams struct {
		Name         *string `json:"name"`
		TargetCents  *int64  `json:"targetCents"`
		CurrentCents *int64  `json:"currentCents"`
		Deadline     *Date   `json:"deadline"`
		Color        *string `json:"color"`
		Icon         *string `json:"icon"`
	}
)

// Member builds the entity (without id) from the payload.
func (p CreateMemberParams) Member() FamilyMember {
	return FamilyMember{Name: p.Name, Email: p.Email, Avatar: p.Avatar, Color: p.Color}
}

func (p CreateCategoryParams) Category() Category {
	return Category{Name: p.Name, Type: p.Type, Color: p.Color, Icon: p.Icon}
}

func (p CreateAccountParams) Account() BankAccount {
	return BankAccount{
		Name:          p.Name,
		Bank:          p.Bank,
		Balance:       Money{Cents: p.BalanceCents},
		AccountNumber: p.AccountNumber,
		Color:         p.Color,
	}
}

func (p CreateCardParams) Card() CreditCard {
	return CreditCard{
		Name:       p.Name,
		Bank:       p.Bank,
		Limit:      Money{Cents: p.LimitCents},
		Balance:    Money{Cents: p.BalanceCents},
		ClosingDay: p.ClosingDay,
		DueDay:     p.DueDay,
		LastFour:   p.LastFour,
		Color:      p.Color,
	}
}

func (p CreateTransactionParams) Transaction() Transaction {
	return Transaction{
		MemberID:     p.MemberID,
		Date:         p.Date,
		Description:  p.Description,
		Amount:       Money{Cents: p.AmountCents},
		Type:         p.Type,
		CategoryID:   p.CategoryID,
		AccountID:    p.AccountID,
		CreditCardID: p.CreditCardID,
		Installment:  p.Installment,
		Status:       p.Status,
		Notes:        p.Notes,
	}
}

func (p CreateGoalParams) Goal() Goal {
	return Goal{
		Name:     p.Name,
		Target:   Money{Cents: p.TargetCents},
		Current:  Money{Cents: p.CurrentCents},
		Deadline: p.Deadline,
		Color:    p.Color,
		Icon:     p.Icon,
	}
}

// Apply merges the non-nil fields into m.
func (p UpdateMemberParams) Apply(m *FamilyMember) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Avatar != nil {
		m.Avatar = *p.Avatar
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
}

func (p UpdateCategoryParams) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}

func (p UpdateAccountParams) Apply(a *BankAccount) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Bank != nil {
		a.Bank = *p.Bank
	}
	if p.BalanceCents != nil {
		a.Balance = Money{Cents: *p.BalanceCents}
	}
	if p.AccountNumber != nil {
		a.AccountNumber = *p.AccountNumber
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
}

func (p UpdateCardParams) Apply(c *CreditCard) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Bank != nil {
		c.Bank = *p.Bank
	}
	if p.LimitCents != nil {
		c.Limit = Money{Cents: *p.LimitCents}
	}
	if p.BalanceCents != nil {
		c.Balance = Money{Cents: *p.BalanceCents}
	}
	if p.ClosingDay != nil {
		c.ClosingDay = *p.ClosingDay
	}
	if p.DueDay != nil {
		c.DueDay = *p.DueDay
	}
	if p.LastFour != nil {
		c.LastFour = *p.LastFour
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}

func (p UpdateTransactionParams) Apply(t *Transaction) {
	if p.MemberID != nil {
		t.MemberID = *p.MemberID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AmountCents != nil {
		t.Amount = Money{Cents: *p.AmountCents}
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.AccountID != nil {
		t.AccountID = *p.AccountID
	}
	if p.CreditCardID != nil {
		t.CreditCardID = *p.CreditCardID
	}
	if p.Installment != nil {
		t.Installment = p.Installment
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}

func (p UpdateGoalParams) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetCents != nil {
		g.Target = Money{Cents: *p.TargetCents}
	}
	if p.CurrentCents != nil {
		g.Current = Money{Cents: *p.CurrentCents}
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.Icon != nil {
		g.Icon = *p.Icon
	}
}
