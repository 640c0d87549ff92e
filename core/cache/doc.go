// Package cache provides the in-memory result caches used on both legs of a
// resolution: remote flight-data registrations and registry lookups.
//
// # Components
//
//   - Cache: a bounded LRU cache with per-cache TTL. Expiry is lazy (checked on
//     access); eviction removes the least-recently-touched entry. A max entry
//     count of zero or less disables storage entirely.
//   - Loader: couples a Cache with request coalescing. Concurrent calls for the
//     same key share one in-flight operation, so a popular flight or tail number
//     costs a single remote call or file scan no matter how many clients ask.
//
// Both types are constructed once at startup and passed to the services that
// need them; there is no package-level state.
package cache
