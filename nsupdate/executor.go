package nsupdate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/foorensic/ddns-server/types"
)

// DefaultTimeout bounds a single nsupdate invocation.
const DefaultTimeout = 30 * time.Second

// Outcome captures the result of a successful tool run.
type Outcome struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner submits a transaction batch to the zone update tool. It is the
// one side-effecting capability in the request path and is mocked in
// tests.
type Runner interface {
	Run(ctx context.Context, tx *Transaction) (*Outcome, error)
}

// ToolRunner invokes the external nsupdate binary. Every run writes the
// batch to its own temporary file, so concurrent requests never share a
// transaction medium and need no locking. The file is removed on every
// exit path.
type ToolRunner struct {
	Path    string        // nsupdate binary path
	Timeout time.Duration // per-invocation bound; DefaultTimeout when zero
}

// Run persists tx to a fresh temporary file and hands it to the tool.
// A non-zero exit, spawn failure, or timeout is returned as
// *types.ExecError carrying the captured streams.
func (r *ToolRunner) Run(ctx context.Context, tx *Transaction) (*Outcome, error) {
	file, err := os.CreateTemp("", "nsupdate-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create transaction file: %w", err)
	}
	name := file.Name()
	defer os.Remove(name)

	if _, err := file.WriteString(tx.Render()); err != nil {
		file.Close()
		return nil, fmt.Errorf("write transaction file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close transaction file: %w", err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.Path, name)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Orphaned children of a killed tool must not hold the output pipes
	// open past the deadline.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		execErr := &types.ExecError{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execErr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := runCtx.Err(); ctxErr != nil {
			execErr.Err = ctxErr
		} else if execErr.ExitCode == 0 {
			execErr.Err = err
		}
		return nil, execErr
	}

	return &Outcome{
		ExitCode: 0,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
