// Package types defines the record and method enumerations, the request
// and result types, and the error types used throughout ddns-server.
package types

import (
	"errors"
	"fmt"
)

// RecordType represents a DNS record type handled by this service.
type RecordType string

const (
	RecordTypeA   RecordType = "A"
	RecordTypeTXT RecordType = "TXT"
)

// validRecordTypes is the set of all supported record types.
var validRecordTypes = map[RecordType]bool{
	RecordTypeA:   true,
	RecordTypeTXT: true,
}

// IsValid reports whether the RecordType is a supported DNS record type.
func (rt RecordType) IsValid() bool {
	return validRecordTypes[rt]
}

// Method represents the mutation applied to a record set.
type Method string

const (
	MethodUpdate Method = "update"
	MethodDelete Method = "delete"
)

// validMethods is the set of all supported methods.
var validMethods = map[Method]bool{
	MethodUpdate: true,
	MethodDelete: true,
}

// IsValid reports whether the Method is supported.
func (m Method) IsValid() bool {
	return validMethods[m]
}

// UpdateRequest is a fully validated record mutation request. Hosts is
// never empty and every host satisfies hostname label grammar. Value is
// the resolved record value: an IP literal for A updates, a quoted and
// escaped string literal for TXT updates, empty for deletes.
type UpdateRequest struct {
	Type   RecordType
	Method Method
	Hosts  []string
	Value  string
}

// UpdateResult is the caller-visible outcome of an update request.
type UpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Sentinel errors for request validation.
var (
	ErrInvalidRecordType = errors.New("unsupported record type")
	ErrInvalidMethod     = errors.New("unsupported method")
	ErrMissingHost       = errors.New("at least one host is required")
	ErrInvalidHost       = errors.New("invalid host name")
	ErrInvalidAddress    = errors.New("value for A record is not a valid IP")
	ErrEmptyValue        = errors.New("TXT record value cannot be empty")
)

// ValidationError reports which request field failed validation and why.
// It is always a client error.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ExecError reports a failed zone update tool invocation. The captured
// diagnostics are for logging only and must not be returned to clients.
type ExecError struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zone update tool failed: %s", e.Err)
	}
	return fmt.Sprintf("zone update tool exited with status %d", e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
