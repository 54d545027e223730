// Package models defines the core domain models for OneRoom.
//
// # Models
//
//   - User: registered account; members of rooms reference User IDs
//   - Room: a shared household with an ordered member list and an invite code
//   - Expense / Split: money fronted by one member and each member's share of it
//   - Settlement: a suggested payment between two members, never persisted
//   - Task / Recurrence: chores, optionally recurring with automatic rotation
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use shopspring/decimal, never float64
// 2. **Avoid circular references**: relationships are ID strings, not pointers
// 3. **Recurrence is a sum type**: NoRecurrence or Every, no nullable nested fields
package models
