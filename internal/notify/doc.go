// Package notify delivers fire-and-forget completion webhooks. Failures are
// reported to the caller for logging and otherwise ignored; nothing here
// feeds back into job status.
package notify
