// Package config loads and validates scanmatch configuration from TOML.
//
// Configuration covers the scan CSV location, the local contacts database,
// watcher polling cadence, search paging, and log output. Load applies
// defaults, expands home-relative paths, and validates the result so the
// rest of the code can trust the values it receives.
package config
