// Package models defines the core domain models for receiptbook.
//
// # Models
//
//   - Seller: a salesperson who owns a reserved range of receipt numbers
//   - Receipt: a single recorded sale with up to five line items
//   - LineItem: one product line on a receipt
//   - SalesReport: a seller's receipts and commission over a date range
//
// # Design Principles
//
// 1. **Denormalized seller name**: receipts keep the seller's name as it was
// printed, plus the seller ID when the seller still exists
// 2. **Derived totals**: line and receipt totals are always recomputed from
// quantity and unit price, never trusted from input
// 3. **Avoid circular references**: relationships use ID strings, not pointers
package models
