package docparser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

// LocalProvider shells out to a local parsing command as a fallback when the
// remote service is unreachable. The payload is written to a temp file that
// is removed on every exit path; the command must print the extracted records
// as JSON on stdout.
type LocalProvider struct {
	command string
	args    []string
	timeout time.Duration
}

// NewLocalProvider creates a subprocess-backed provider. The temp file path
// is appended to args, followed by "--format json".
func NewLocalProvider(command string, args []string, timeout time.Duration) *LocalProvider {
	return &LocalProvider{command: command, args: args, timeout: timeout}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Parse(ctx context.Context, payload []byte, mimetype string) ([]statement.ExtractedRecord, error) {
	tmp, err := os.CreateTemp("", "brenkeeper-doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.args...), tmp.Name(), "--format", "json")
	cmd := exec.CommandContext(runCtx, p.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("parser command failed: %w (stderr: %s)", err, truncate(stderr.String(), 200))
	}

	return decodeRecords(stdout.Bytes())
}
