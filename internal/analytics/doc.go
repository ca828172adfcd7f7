// Package analytics implements the sales comparison engine behind the
// dashboard: top-performer rankings, category rollups, growth/decline
// classification, per-product deep dives, and dataset summaries.
//
// # Design
//
// Every operation is a pure function over a slice of domain.SalesRecord:
// inputs are never mutated, there is no caching, and identical inputs with
// identical parameters produce identical output. The surrounding dashboard
// relies on this to recompute results on every filter change or tab switch.
//
// # Growth percentage policy
//
// A growth percentage is undefined when period A is zero and period B is
// positive (there is no baseline to divide by). Undefined values are never
// NaN or an error: they carry an explicit defined-flag, sort last in
// growth_pct rankings, and classify as New. Records with both periods zero
// have a defined growth of zero and classify as Inactive.
//
// # Error Handling
//
// Bad parameters surface as wrapped sentinel errors (ErrInvalidMetric,
// ErrInvalidArgument, ErrNotFound) that the transport layer maps onto API
// error responses. None of them are fatal; the caller re-invokes with
// corrected parameters.
package analytics
