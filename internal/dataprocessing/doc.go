// Package dataprocessing loads eBay sales exports into SalesRecord
// collections. It tolerates the mixed formats real exports arrive in:
// CSV or XLSX, with or without a header row, with or without a price
// column.
//
// Malformed rows are never fatal and are never silently dropped: each one
// lands in the ParseResult rejection list with its line number and reason,
// so the caller can report the count to the user. Numeric coercion follows
// the dashboard's rules: non-numeric sales become zero with a logged
// warning, prices lose their currency formatting, and "No price" markers
// keep the price flagged unknown instead of zero-conflated.
package dataprocessing
