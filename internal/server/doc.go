// Package server exposes the HTTP admission and status surface. Submission
// creates the job record and hands it to the pipeline scheduler without
// blocking; callers poll the status endpoint or wait for their webhook.
package server
