package nsupdate

import (
	"fmt"
	"strings"

	"github.com/foorensic/ddns-server/types"
)

// Transaction is an ordered batch of zone update directives. It is built
// once per request, immutable after construction, and submitted to the
// update tool as one atomic unit.
type Transaction struct {
	lines []string
}

// Lines returns a copy of the directive lines in order.
func (t *Transaction) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Render emits the batch in the line protocol consumed by nsupdate.
func (t *Transaction) Render() string {
	return strings.Join(t.lines, "\n") + "\n"
}

// Builder renders validated requests into zone update transactions.
// It is a pure translation step with no I/O.
type Builder struct {
	Server string // name server target, normally 127.0.0.1
	Zone   string // zone name without surrounding dots
	TTL    uint32 // TTL for added records
}

// Build produces the transaction for req. Every host gets an
// unconditional delete directive first; updates follow each delete with
// an add carrying the configured TTL and the resolved value. Delete
// before add, per host, in a single batch is what makes repeated updates
// idempotent.
func (b Builder) Build(req *types.UpdateRequest) *Transaction {
	lines := []string{
		"server " + b.Server,
		"zone " + b.Zone,
	}

	for _, host := range req.Hosts {
		fqdn := host + "." + b.Zone
		lines = append(lines, fmt.Sprintf("update delete %s %s", fqdn, req.Type))
		if req.Method == types.MethodUpdate {
			lines = append(lines, fmt.Sprintf("update add %s %d %s %s", fqdn, b.TTL, req.Type, req.Value))
		}
	}

	lines = append(lines, "send")
	return &Transaction{lines: lines}
}
