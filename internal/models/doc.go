// Package models defines the core domain models for the shared-expense ledger.
//
// # Models
//
//   - Expense: an amount spent on behalf of a group, created by one member
//   - ExpenseShare: one participant's portion of an expense (owed and paid)
//   - Group: read-only view of a group supplied by the membership directory
//   - ShareLine: an ExpenseShare joined with the expense header fields needed
//     for debt aggregation
//
// # Design Principles
//
//  1. **Explicit identifiers**: Expense holds GroupID, ExpenseShare holds
//     ExpenseID and UserID. There are no back-pointers between models.
//  2. **Fixed-point money**: every amount is a money.Money in minor units.
//  3. **Single currency per expense**: shares are always expressed in the
//     currency of their expense.
package models
