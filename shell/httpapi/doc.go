// Package httpapi exposes the lending service commands and queries over HTTP.
//
// The handlers are thin adapters: they decode the request, build the command
// or query, invoke the feature handler, and map the error to a status code.
// All lending logic lives in the feature packages.
package httpapi
