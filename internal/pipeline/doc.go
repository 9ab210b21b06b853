// Package pipeline glues scanned identities to ranked contact matches.
//
// RunMatch validates that a scan carries at least one usable criterion,
// normalizes name casing (scanners shout in all-caps, contact stores hold
// proper case), and delegates to the match ranker. The consumer decides how
// to render the returned confidence ordering.
package pipeline
