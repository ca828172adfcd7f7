// Package app wires configuration, logging, telemetry, the dataset
// service, and the HTTP router into a runnable application with
// graceful shutdown.
package app
