// Package textutil provides string comparison and normalization helpers for
// identity matching: edit-distance similarity, date-of-birth normalization,
// and name casing/tokenization.
package textutil
