// Package registry tracks video jobs in memory for the lifetime of the
// process. Each record has a single writer (the pipeline execution owning
// the job) and many readers (status queries, the webhook notifier), so the
// map is guarded by one RWMutex and all reads return value snapshots.
//
// Status transitions are monotonic: queued -> processing -> completed or
// failed. Terminal states never change, and the registry rejects any
// transition that would move backward.
package registry
