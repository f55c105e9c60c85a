// Package nsupdate validates record update requests, renders them into
// zone update transactions, and submits them to the external nsupdate
// tool.
package nsupdate

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/miekg/dns"

	"github.com/foorensic/ddns-server/types"
)

// hostPattern matches a relative host name: dot-separated labels of
// alphanumerics and hyphens, with no leading or trailing hyphen per label.
var hostPattern = regexp.MustCompile(`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)

// ParseRequest validates raw query input into an UpdateRequest.
// Host entries may contain comma-separated lists; they are flattened in
// order. clientAddr is the observed caller address and becomes the record
// value for A updates without an explicit value. Failures are always
// *types.ValidationError.
func ParseRequest(recordType, method string, hosts []string, value, clientAddr string) (*types.UpdateRequest, error) {
	rt := types.RecordType(recordType)
	if !rt.IsValid() {
		return nil, &types.ValidationError{Field: "type", Err: fmt.Errorf("%w: %q", types.ErrInvalidRecordType, recordType)}
	}

	m := types.Method(method)
	if !m.IsValid() {
		return nil, &types.ValidationError{Field: "method", Err: fmt.Errorf("%w: %q", types.ErrInvalidMethod, method)}
	}

	var parsed []string
	for _, entry := range hosts {
		for _, host := range strings.Split(entry, ",") {
			host = strings.TrimSpace(host)
			if !validHost(host) {
				return nil, &types.ValidationError{Field: "host", Err: fmt.Errorf("%w: %q", types.ErrInvalidHost, host)}
			}
			parsed = append(parsed, host)
		}
	}
	if len(parsed) == 0 {
		return nil, &types.ValidationError{Field: "host", Err: types.ErrMissingHost}
	}

	resolved, err := resolveValue(rt, m, value, clientAddr)
	if err != nil {
		return nil, err
	}

	return &types.UpdateRequest{
		Type:   rt,
		Method: m,
		Hosts:  parsed,
		Value:  resolved,
	}, nil
}

// validHost reports whether host is a syntactically valid relative host
// name. The regexp enforces label grammar; dns.IsDomainName additionally
// caps label and name length.
func validHost(host string) bool {
	if host == "" || !hostPattern.MatchString(host) {
		return false
	}
	if _, ok := dns.IsDomainName(host); !ok {
		return false
	}
	return true
}

// resolveValue computes the record value actually written. Deletes ignore
// the value entirely: they remove all records of the type at the host.
func resolveValue(rt types.RecordType, m types.Method, value, clientAddr string) (string, error) {
	if m == types.MethodDelete {
		return "", nil
	}

	value = strings.Trim(value, ` "'`)

	switch rt {
	case types.RecordTypeA:
		if value == "" {
			value = clientAddr
		}
		if net.ParseIP(value) == nil {
			return "", &types.ValidationError{Field: "value", Err: fmt.Errorf("%w: %q", types.ErrInvalidAddress, value)}
		}
		return value, nil

	case types.RecordTypeTXT:
		if value == "" {
			return "", &types.ValidationError{Field: "value", Err: types.ErrEmptyValue}
		}
		return quoteTXT(value), nil
	}

	// Unreachable: rt was validated against the closed enumeration.
	return "", &types.ValidationError{Field: "type", Err: types.ErrInvalidRecordType}
}

// quoteTXT embeds value in a double-quoted literal, escaping backslashes
// and double quotes so the tool's parser round-trips the original string.
func quoteTXT(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}
