// Package audit emits RFC5424-style security audit events for
// authentication, registration and authorization decisions.
package audit
