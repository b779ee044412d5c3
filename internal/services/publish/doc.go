// Package publish moves finished videos to a durable location and returns
// their public URLs. Two backends exist: a local directory handoff and a
// Google Drive upload using a service-account credential.
package publish
