package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/console"
	"github.com/deepinsight/backend/pkg/client"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errNotSignedIn = errors.New("not signed in, run 'insightctl login' first")

func (a *app) sessionPath() (string, error) {
	if p := a.v.GetString("session-file"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".insightctl", "session.json"), nil
}

func (a *app) client(cmd *cobra.Command) (*client.Client, error) {
	path, err := a.sessionPath()
	if err != nil {
		return nil, err
	}
	level := slog.LevelError + 1
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return client.New(a.v.GetString("server"),
		client.WithTokenStore(client.NewFileTokenStore(path)),
		client.WithTimeout(a.v.GetDuration("timeout")),
		client.WithLogger(logger),
	), nil
}

// session returns the confirmed admin session or errNotSignedIn.
func session(ctx context.Context, c *client.Client) (*client.Session, error) {
	s := c.CurrentUser(ctx)
	if s == nil {
		return nil, errNotSignedIn
	}
	return s, nil
}

// render writes v as JSON or YAML, or calls table for the default format.
func (a *app) render(w io.Writer, v any, table func(w io.Writer)) error {
	switch a.v.GetString("output") {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		table(w)
		return nil
	}
}

// ago renders t relative to now, or N/A for the zero time.
func ago(t time.Time) string {
	if t.IsZero() {
		return console.NotAvailable
	}
	return humanize.Time(t)
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// readLine reads one line from the command's input.
func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}
	return readLine(cmd)
}

// confirm asks a yes/no question on stderr.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
	answer, err := readLine(cmd)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
