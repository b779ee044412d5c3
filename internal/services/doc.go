// Package services holds the error taxonomy shared by external collaborators
// (asset fetcher, media composer, artifact publisher) and the pipeline code
// that classifies their failures.
package services
