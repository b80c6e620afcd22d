// Package combined holds benchmarks that run the ring together with the
// cancel and tick helpers, or side by side with channels and
// go-lock-free-ring.
//
// Isolated micro-benchmarks miss the cost of a consumer loop that checks
// for cancellation and periodic work on every item; these do not.
package combined
