package api

// Amounts are decimal strings with at most two fractional digits ("33.34").
// Dates are "YYYY-MM-DD". Timestamps are Unix seconds.

// Expense is an expense header.
type Expense struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	CreatedBy   string `json:"createdBy"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
	// MyShare is the requester's share amount, empty when they have none.
	MyShare string `json:"myShare,omitempty"`
}

// Share is one participant's portion of an expense.
type Share struct {
	ID          string `json:"id"`
	ExpenseID   string `json:"expenseId"`
	UserID      string `json:"userId"`
	Amount      string `json:"amount"`
	Paid        string `json:"paid"`
	Outstanding string `json:"outstanding"`
	Currency    string `json:"currency"`
}

// Group is a membership directory entry.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	OwnerID   string   `json:"ownerId"`
	Members   []string `json:"members"`
	Closed    bool     `json:"closed"`
	CreatedAt int64    `json:"createdAt"`
}

type CreateExpenseRequest struct {
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
	Shares  []*Share `json:"shares"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	GroupID     string `json:"groupId"`
	ExpenseID   string `json:"expenseId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetExpenseSharesRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseSharesResponse struct {
	Shares []*Share `json:"shares"`
}

// ShareLine is one requested share in a replacement. Paid defaults to "0".
type ShareLine struct {
	UserID string `json:"userId"`
	Amount string `json:"amount"`
	Paid   string `json:"paid,omitempty"`
}

type ReplaceSharesRequest struct {
	ExpenseID string       `json:"expenseId"`
	Shares    []*ShareLine `json:"shares"`
}

type ReplaceSharesResponse struct {
	Shares []*Share `json:"shares"`
}

type UpdatePaidAmountRequest struct {
	ExpenseID string `json:"expenseId"`
	UserID    string `json:"userId"`
	Paid      string `json:"paid"`
}

type UpdatePaidAmountResponse struct {
	Share *Share `json:"share"`
}

type RemoveParticipantRequest struct {
	ExpenseID string `json:"expenseId"`
	UserID    string `json:"userId"`
}

type RemoveParticipantResponse struct{}

// ExpenseDebt is one expense contributing to a counterparty debt.
type ExpenseDebt struct {
	ExpenseID   string `json:"expenseId"`
	ExpenseName string `json:"expenseName"`
	Amount      string `json:"amount"`
	Paid        string `json:"paid"`
}

// CounterpartyDebt is the debt between the caller and one counterparty in
// one group and currency.
type CounterpartyDebt struct {
	CounterpartyID string         `json:"counterpartyId"`
	Currency       string         `json:"currency"`
	Total          string         `json:"total"`
	Paid           string         `json:"paid"`
	Outstanding    string         `json:"outstanding"`
	Expenses       []*ExpenseDebt `json:"expenses"`
}

type GroupDebts struct {
	GroupID   string              `json:"groupId"`
	GroupName string              `json:"groupName"`
	Debts     []*CounterpartyDebt `json:"debts"`
}

// Balance is the netted position against one counterparty. A positive Net
// means the counterparty owes the caller.
type Balance struct {
	CounterpartyID string `json:"counterpartyId"`
	Currency       string `json:"currency"`
	YouOwe         string `json:"youOwe"`
	OwesYou        string `json:"owesYou"`
	Net            string `json:"net"`
}

type GetDebtSummaryRequest struct{}

type GetDebtSummaryResponse struct {
	UserID    string        `json:"userId"`
	Balances  []*Balance    `json:"balances"`
	YouOwe    []*GroupDebts `json:"youOwe"`
	OwedToYou []*GroupDebts `json:"owedToYou"`
}

type GetGroupDebtSummaryRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupDebtSummaryResponse struct {
	UserID    string              `json:"userId"`
	GroupID   string              `json:"groupId"`
	GroupName string              `json:"groupName"`
	Balances  []*Balance          `json:"balances"`
	YouOwe    []*CounterpartyDebt `json:"youOwe"`
	OwedToYou []*CounterpartyDebt `json:"owedToYou"`
}

// CreateGroupRequest creates a group owned by the caller. The caller is
// always the first member; Members lists the others.
type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type AddMembersRequest struct {
	GroupID string   `json:"groupId"`
	Members []string `json:"members"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type CloseGroupRequest struct {
	GroupID string `json:"groupId"`
}

type CloseGroupResponse struct {
	Group *Group `json:"group"`
}
