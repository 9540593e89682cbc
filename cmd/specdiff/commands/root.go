// Package commands provides the specdiff command tree.
package commands

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/erraggy/specdiff/internal/config"
	"github.com/erraggy/specdiff/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitBreaking = 2
)

// errBreaking is returned by commands run with --fail-on-breaking when the
// report holds breaking changes.
var errBreaking = errors.New("breaking changes found")

// flagBindings maps config keys to the flags that override them. A flag is
// bound only when the running command defines it.
var flagBindings = map[string]string{
	"log.level":             "log-level",
	"log.format":            "log-format",
	"policy.name":           "policy",
	"policy.file":           "policy-file",
	"validate":              "validate",
	"fetch.timeout":         "fetch-timeout",
	"fetch.max_retries":     "fetch-retries",
	"server.addr":           "addr",
	"server.static_dir":     "static-dir",
	"mcp.detail_limit":      "detail-limit",
	"mcp.allow_private_ips": "allow-private-ips",
}

// app is the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errBreaking):
		Writef(stderr, "%v\n", err)
		return ExitBreaking
	default:
		Writef(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// NewRootCommand builds the specdiff command tree reading from stdin and
// writing to stdout and stderr.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "specdiff",
		Short: "Compare OpenAPI documents and flag breaking changes",
		Long: `specdiff aligns the operations of two OpenAPI 3.x documents by method and path,
compares everything each operation exchanges, and flags changes that would
break existing clients.

Documents are read from a file path, an http(s) URL, "-" for stdin, or
git:<rev>:<path> for a file at a git revision of the current repository.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.sync() },
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SuggestionsMinimumDistance = 2

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./specdiff.yaml or $HOME/.config/specdiff/specdiff.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, or error")
	pf.String("log-format", "", "log format: console or json")
	pf.String("policy", "", "breaking-change policy: default, strict, or lenient")
	pf.String("policy-file", "", "YAML rule file that refines a base policy")
	pf.Bool("validate", false, "lint both documents and report issues as warnings")

	root.AddCommand(
		a.compareCmd(),
		a.releaseNotesCmd(),
		a.fullDiffCmd(),
		a.serveCmd(),
		a.mcpCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides, and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.NewWithWriter(cfg.Log, a.stderr).With(zap.String("command", cmd.Name()))
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range flagBindings {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) sync() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}
