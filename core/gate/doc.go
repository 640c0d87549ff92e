// Package gate bounds the number of simultaneous registry file scans.
//
// The registry files are tens to hundreds of megabytes and every lookup is a
// streaming scan, so unbounded concurrency means unbounded open file handles
// and decode work. The Gate is a backpressure valve: lookups are correct at
// any concurrency level, the gate just caps resource use. Waiters resume in
// arrival order.
package gate
