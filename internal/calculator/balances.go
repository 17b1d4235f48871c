package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// ExpenseDetail is one expense contributing to a counterparty debt.
type ExpenseDetail struct {
	ExpenseID   string
	ExpenseName string
	Amount      money.Money
	Paid        money.Money
}

// CounterpartyDebt is what flows between the user and one counterparty
// inside one group, in one currency.
type CounterpartyDebt struct {
	CounterpartyID string
	Total          money.Money // Sum of share amounts
	Paid           money.Money // Sum of amounts already paid
	Expenses       []ExpenseDetail
}

// Outstanding returns Total - Paid. Negative when the debtor overpaid.
func (d CounterpartyDebt) Outstanding() money.Money {
	return d.Total.Sub(d.Paid)
}

// Currency returns the currency of the debt.
func (d CounterpartyDebt) Currency() string {
	return d.Total.Currency()
}

// GroupDebts holds the counterparty debts of one group.
type GroupDebts struct {
	GroupID   string
	GroupName string // filled in by callers that know it
	Debts     []CounterpartyDebt
}

// NetBalance is the netted position against one counterparty across groups.
type NetBalance struct {
	CounterpartyID string
	YouOwe         money.Money
	OwesYou        money.Money
	Net            money.Money // OwesYou - YouOwe; positive means the counterparty owes the user
}

// NetBalanceSet is the full debt summary of a user.
type NetBalanceSet struct {
	UserID    string
	Balances  []NetBalance
	YouOwe    []GroupDebts // user is the debtor, counterparty the expense creator
	OwedToYou []GroupDebts // user is the creator, counterparty the debtor
}

// GroupDebtSummary is the debt summary of a user restricted to one group.
type GroupDebtSummary struct {
	UserID    string
	GroupID   string
	GroupName string
	Balances  []NetBalance
	YouOwe    []CounterpartyDebt
	OwedToYou []CounterpartyDebt
}

type debtKey struct {
	group        string
	counterparty string
	currency     string
}

type balanceKey struct {
	counterparty string
	currency     string
}

// SummarizeDebts nets the share lines of userID.
//
// debtorLines are shares held by userID; creditorLines are shares of
// expenses created by userID. Lines where the share holder is also the
// expense creator are ignored in both directions.
//
// Algorithm:
//   - group debtor lines by (group, creator) and creditor lines by (group, share holder)
//   - sum amount - paid per counterparty into youOwe / owesYou
//   - net = owesYou - youOwe per counterparty across all groups
//
// Amounts in different currencies are kept apart.
func SummarizeDebts(userID string, debtorLines, creditorLines []models.ShareLine) NetBalanceSet {
	youOwe := groupLines(userID, debtorLines, func(l models.ShareLine) string { return l.CreatorID }, true)
	owedToYou := groupLines(userID, creditorLines, func(l models.ShareLine) string { return l.UserID }, false)

	return NetBalanceSet{
		UserID:    userID,
		Balances:  netBalances(youOwe, owedToYou),
		YouOwe:    byGroup(youOwe),
		OwedToYou: byGroup(owedToYou),
	}
}

// SummarizeGroupDebts is SummarizeDebts restricted to lines of groupID.
func SummarizeGroupDebts(userID, groupID string, debtorLines, creditorLines []models.ShareLine) GroupDebtSummary {
	inGroup := func(lines []models.ShareLine) []models.ShareLine {
		var out []models.ShareLine
		for _, l := range lines {
			if l.GroupID == groupID {
				out = append(out, l)
			}
		}
		return out
	}

	set := SummarizeDebts(userID, inGroup(debtorLines), inGroup(creditorLines))
	summary := GroupDebtSummary{
		UserID:   userID,
		GroupID:  groupID,
		Balances: set.Balances,
	}
	for _, g := range set.YouOwe {
		summary.YouOwe = append(summary.YouOwe, g.Debts...)
	}
	for _, g := range set.OwedToYou {
		summary.OwedToYou = append(summary.OwedToYou, g.Debts...)
	}
	return summary
}

// groupLines accumulates lines into per (group, counterparty, currency) debts.
// asDebtor selects which side of the line must be userID.
func groupLines(userID string, lines []models.ShareLine, counterparty func(models.ShareLine) string, asDebtor bool) map[debtKey]*CounterpartyDebt {
	debts := make(map[debtKey]*CounterpartyDebt)
	for _, l := range lines {
		if l.CreatorID == l.UserID {
			continue
		}
		if asDebtor && l.UserID != userID {
			continue
		}
		if !asDebtor && l.CreatorID != userID {
			continue
		}

		currency := l.Amount.Currency()
		key := debtKey{group: l.GroupID, counterparty: counterparty(l), currency: currency}
		d, ok := debts[key]
		if !ok {
			d = &CounterpartyDebt{
				CounterpartyID: key.counterparty,
				Total:          money.Zero(currency),
				Paid:           money.Zero(currency),
			}
			debts[key] = d
		}
		d.Total = d.Total.Add(l.Amount)
		d.Paid = d.Paid.Add(l.Paid)
		d.Expenses = append(d.Expenses, ExpenseDetail{
			ExpenseID:   l.ExpenseID,
			ExpenseName: l.ExpenseName,
			Amount:      l.Amount,
			Paid:        l.Paid,
		})
	}
	return debts
}

func netBalances(youOwe, owedToYou map[debtKey]*CounterpartyDebt) []NetBalance {
	balances := make(map[balanceKey]*NetBalance)
	get := func(k debtKey) *NetBalance {
		bk := balanceKey{counterparty: k.counterparty, currency: k.currency}
		b, ok := balances[bk]
		if !ok {
			b = &NetBalance{
				CounterpartyID: k.counterparty,
				YouOwe:         money.Zero(k.currency),
				OwesYou:        money.Zero(k.currency),
			}
			balances[bk] = b
		}
		return b
	}

	for k, d := range youOwe {
		b := get(k)
		b.YouOwe = b.YouOwe.Add(d.Outstanding())
	}
	for k, d := range owedToYou {
		b := get(k)
		b.OwesYou = b.OwesYou.Add(d.Outstanding())
	}

	out := make([]NetBalance, 0, len(balances))
	for _, b := range balances {
		b.Net = b.OwesYou.Sub(b.YouOwe)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CounterpartyID != out[j].CounterpartyID {
			return out[i].CounterpartyID < out[j].CounterpartyID
		}
		return out[i].Net.Currency() < out[j].Net.Currency()
	})
	return out
}

func byGroup(debts map[debtKey]*CounterpartyDebt) []GroupDebts {
	keys := make([]debtKey, 0, len(debts))
	for k := range debts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.group != b.group {
			return a.group < b.group
		}
		if a.counterparty != b.counterparty {
			return a.counterparty < b.counterparty
		}
		return a.currency < b.currency
	})

	var groups []GroupDebts
	for _, k := range keys {
		if len(groups) == 0 || groups[len(groups)-1].GroupID != k.group {
			groups = append(groups, GroupDebts{GroupID: k.group})
		}
		last := &groups[len(groups)-1]
		last.Debts = append(last.Debts, *debts[k])
	}
	return groups
}
