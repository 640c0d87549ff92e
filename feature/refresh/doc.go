// Package refresh replaces the on-disk registry dataset without ever exposing
// a partially written or missing file to concurrent readers.
//
// # Pipeline
//
// One run moves through download → extract → swap. The remote archive is
// downloaded to a temporary file in the data directory (redirects capped,
// total timeout enforced), the two named entries are extracted next to their
// targets, and each target is replaced by rename: the current file is set
// aside as a .old sidecar, the extracted file is renamed into place. Renames
// are atomic within one filesystem volume, so a reader holding an open handle
// keeps reading a complete old file and a reader opening the path sees a
// complete new one; there is no instant at which the path is missing. A
// failure at any stage cleans up temporaries, restores set-aside files, and
// leaves the previous dataset generation intact and servable.
//
// Only one run proceeds at a time within the process. The guard is an atomic
// flag, not a filesystem lock: the deployment model is a single writer with
// many stateless readers.
//
// # Scheduler and mirror
//
// A periodic driver compares the master file's age against a staleness
// threshold and triggers a run, skipping the check when one is in flight.
// After a successful local swap the new files can optionally be pushed to an
// object store under timestamped names together with a manifest recording the
// update time and both object names; mirror failures are logged, never rolled
// back into the local swap.
package refresh
