// Package flight resolves a flight number and date to the aircraft flying it.
//
// Resolution chains two legs: the remote flight-data API yields the tail
// registration for the flight, then the registry feature joins that
// registration against the local aircraft files. Each leg has its own
// cache+coalescer, so a popular flight costs one remote call and one file
// scan no matter how many clients ask at once.
//
// Three user-facing outcomes are kept distinct: resolved (possibly with no
// registry record for the tail), no aircraft assigned to the flight yet, and
// flight data currently unavailable (remote failure or timeout; never
// retried within a request).
package flight
