package scan

import (
	"strings"
	"time"
)

// Identity is one scanned ID record. All fields besides ScanTime are
// optional strings as delivered by the scanner; records are immutable once
// produced.
type Identity struct {
	FirstName    string
	LastName     string
	FullName     string
	DateOfBirth  string
	Age          string
	IDNumber     string
	IDExpiration string
	IDIssued     string
	ScanTime     time.Time
	PhotoRef     string
}

// Key identifies a record for new-vs-seen comparison. Two records with the
// same scan timestamp and ID number are the same scan.
type Key struct {
	ScanTimestamp string
	IDNumber      string
}

// Key returns the identity key for duplicate-emission suppression.
func (i Identity) Key() Key {
	return Key{
		ScanTimestamp: i.ScanTime.UTC().Format(time.RFC3339),
		IDNumber:      i.IDNumber,
	}
}

// HasCriteria reports whether the record carries at least one usable match
// criterion: a first name, last name, or date of birth.
func (i Identity) HasCriteria() bool {
	return strings.TrimSpace(i.FirstName) != "" ||
		strings.TrimSpace(i.LastName) != "" ||
		strings.TrimSpace(i.DateOfBirth) != ""
}
