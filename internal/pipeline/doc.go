// Package pipeline orchestrates the daily run: fetch the record, download
// the image, optimize it, replicate it to the share, notify both channels,
// and optionally clean up the original.
//
// The stage flow is strictly linear. A failure in any of the four mandatory
// stages (fetch, acquire, optimize, replicate) terminates the run at that
// stage; the two notification channels are best-effort and independent of
// each other, and cleanup never escalates. A non-image day short-circuits
// after the fetch with a distinguished skip status, not a failure.
package pipeline
