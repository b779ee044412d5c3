// Package fetch retrieves remote audio assets over HTTP and stages them on
// the local filesystem for composition.
package fetch
