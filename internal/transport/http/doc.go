// Package http exposes the sales analytics API over chi. Handlers own
// request parsing and error mapping only; all analytics semantics live in
// the services and analytics packages. Errors leave every endpoint as
// RFC 7807 problem documents, successes as {"status":"success","data":...}
// envelopes.
package http
