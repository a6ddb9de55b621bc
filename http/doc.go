// Package http provides the HTTP plumbing shared by tracker clients: a
// single-attempt JSON client built on go-cleanhttp and a set of sentinel
// errors that API errors unwrap to.
//
// Requests are never retried here. Callers decide whether an error is worth
// another attempt with IsRetryable.
package http
