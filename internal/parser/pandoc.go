package parser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts command execution so tests can avoid a real
// pandoc binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts .docx to an HTML fragment with the pandoc CLI.
type PandocConverter struct {
	Path   string
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter(path string) *PandocConverter {
	if path == "" {
		path = "pandoc"
	}
	return &PandocConverter{Path: path, Runner: &ExecRunner{}}
}

// ToHTML runs pandoc on path and returns its stdout. Syntax highlighting
// is disabled so code blocks come out as plain <pre><code>. A non-zero exit
// or empty output means the document is unreadable (corrupt or password
// protected) and is reported as ErrConversion.
func (c *PandocConverter) ToHTML(ctx context.Context, path string) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.Path, path, "-f", "docx", "-t", "html", "--no-highlight")
	if err != nil {
		return "", fmt.Errorf("%w: pandoc: %s: %v", ErrConversion, strings.TrimSpace(stderr), err)
	}
	if strings.TrimSpace(stdout) == "" {
		return "", fmt.Errorf("%w: pandoc produced no output", ErrConversion)
	}
	return stdout, nil
}
