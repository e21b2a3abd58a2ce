// Package testutil contains fake provider servers used across tests. Each
// fake speaks just enough of a vendor wire format for the real SDK clients to
// complete a call, and records every request body so tests can assert the
// call shape. They are not intended for production usage.
package testutil
