// Package services holds the business logic between the HTTP transport
// and the analytics engine. The dataset service keeps each parsed upload
// as an immutable in-memory snapshot keyed by UUID; analytics queries read
// snapshots without copying, so concurrent requests never contend beyond
// the map lock.
package services
