// Package pipeline runs the per-job video production sequence: fetch the
// narration segments, compose the captioned video, publish it, and notify
// the caller. A weighted semaphore bounds how many executions run at once;
// the slot is held through cleanup so the limit always reflects work that is
// genuinely in flight, teardown included.
//
// Failure semantics: any stage error is caught at the job boundary, recorded
// as the job's terminal failure reason, and short-circuits the remaining
// stages. Nothing is retried. Webhook delivery failures are logged and never
// touch job state.
package pipeline
