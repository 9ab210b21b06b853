// Package match scores and ranks candidate person records against a scanned
// identity.
//
// The Scorer produces a 0-100 confidence score from weighted first-name,
// last-name, and date-of-birth components plus a mutually exclusive tie-break
// bonus, along with a human-readable rationale for UI transparency. The
// Ranker fans a query out across the ContactSearch capability, deduplicates
// the candidate union by record ID, scores every survivor, and returns the
// results sorted by descending confidence.
//
// Scoring has no I/O and is always synchronous; only the Ranker touches the
// external search capability.
package match
