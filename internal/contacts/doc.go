// Package contacts persists the contact directory in SQLite and exposes the
// search capability the matching pipeline ranks against.
package contacts
