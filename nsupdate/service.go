package nsupdate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foorensic/ddns-server/types"
)

// genericFailureMessage is what clients see when the update tool fails;
// the diagnostic detail goes to the log only.
const genericFailureMessage = "An error occured."

// Service orchestrates building and executing zone update transactions
// for validated requests.
type Service struct {
	builder Builder
	runner  Runner
}

// NewService wires a builder to a runner.
func NewService(builder Builder, runner Runner) *Service {
	return &Service{builder: builder, runner: runner}
}

// Apply builds the transaction for req, submits it, and maps the outcome
// to a caller-visible result. A non-nil error means the tool invocation
// failed; the returned result then carries a generic message safe to
// return to clients, while the full diagnostics are logged here.
func (s *Service) Apply(ctx context.Context, req *types.UpdateRequest) (types.UpdateResult, error) {
	tx := s.builder.Build(req)

	if _, err := s.runner.Run(ctx, tx); err != nil {
		var execErr *types.ExecError
		if errors.As(err, &execErr) {
			slog.Error("zone update failed",
				"hosts", req.Hosts,
				"type", req.Type,
				"method", req.Method,
				"exit_code", execErr.ExitCode,
				"stdout", execErr.Stdout,
				"stderr", execErr.Stderr,
				"error", execErr.Err,
			)
		} else {
			slog.Error("zone update failed",
				"hosts", req.Hosts,
				"type", req.Type,
				"method", req.Method,
				"error", err,
			)
		}
		return types.UpdateResult{Success: false, Message: genericFailureMessage}, err
	}

	hosts := strings.Join(req.Hosts, ", ")
	message := fmt.Sprintf("Updated record: %s %s %s", hosts, req.Type, req.Value)
	if req.Method == types.MethodDelete {
		message = fmt.Sprintf("Deleted record: %s %s", hosts, req.Type)
	}
	slog.Info(message)

	return types.UpdateResult{Success: true, Message: message}, nil
}
