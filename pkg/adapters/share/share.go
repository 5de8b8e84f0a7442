// Package share provides share surfaces for exported reports.
package share

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aretw0/inspekt/pkg/core"
)

// None is a device without a share surface.
type None struct{}

func (None) IsAvailable(ctx context.Context) bool { return false }

func (None) Share(ctx context.Context, path string) error {
	return core.ErrSharingUnavailable
}

// Command shares a file by running an external program with the path as its
// last argument, e.g. "xdg-open" or "open".
type Command struct {
	Name   string
	Args   []string
	Logger *slog.Logger
}

// ParseCommand splits a command line on whitespace. Empty yields nil.
func ParseCommand(line string) *Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return &Command{Name: fields[0], Args: fields[1:]}
}

// IsAvailable reports whether the program is on PATH.
func (c *Command) IsAvailable(ctx context.Context) bool {
	if c == nil || c.Name == "" {
		return false
	}
	_, err := exec.LookPath(c.Name)
	return err == nil
}

func (c *Command) Share(ctx context.Context, path string) error {
	if !c.IsAvailable(ctx) {
		return core.ErrSharingUnavailable
	}
	args := append(append([]string{}, c.Args...), path)
	out, err := exec.CommandContext(ctx, c.Name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
	}
	if c.Logger != nil {
		c.Logger.Debug("report shared", "command", c.Name, "path", path)
	}
	return nil
}

var _ core.ShareSurface = None{}
var _ core.ShareSurface = (*Command)(nil)
