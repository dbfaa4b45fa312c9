// Package testutil contains helper builders used across tests to reduce
// boilerplate when seeding and inspecting memory documents on disk. They are
// not intended for production usage.
package testutil
