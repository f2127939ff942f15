// Package command implements the regx command line.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coregx/regx"
	"github.com/coregx/regx/meta"
)

// Exit codes, as grep uses them.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitTrouble = 2
)

// errNoMatch makes Run exit with ExitNoMatch without printing anything.
var errNoMatch = errors.New("no match")

// env holds what the persistent flags resolve to.
type env struct {
	v          *viper.Viper
	configFile string
	logger     *slog.Logger
}

// New returns the root command. Settings come from, in decreasing priority,
// command line flags, REGX_* environment variables (REGX_MAX_STEPS, ...) and
// the file named by --config.
func New() *cobra.Command {
	e := &env{v: viper.New(), logger: slog.New(slog.DiscardHandler)}
	defaults := meta.DefaultConfig()

	root := &cobra.Command{
		Use:   "regx",
		Short: "regx searches text with backtracking regular expressions.",
		Long: "`regx` matches Perl-style and XML Schema regular expressions with a backtracking engine.\n\n" +
			"It supports backreferences, lookaround, atomic groups and conditionals, " +
			"and bounds runaway patterns with step and backtrack limits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.configFile, "config", "", "Config file (yaml, toml or json) with defaults for the flags below.")
	pf.Int("max-steps", defaults.MaxSteps, "Ops one match attempt may execute; 0 means unlimited.")
	pf.Int("max-backtrack-depth", defaults.MaxBacktrackDepth, "Backtrack frames one match attempt may hold; 0 means unlimited.")
	pf.String("log-level", "warn", "Minimum log level: debug, info, warn or error.")
	pf.String("log-format", "text", "Log format: text or json.")

	root.AddCommand(newGrep(e), newMatch(e), newExplain(e))
	return root
}

func (e *env) init(cmd *cobra.Command) error {
	e.v.SetEnvPrefix("regx")
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()
	if err := e.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if e.configFile != "" {
		e.v.SetConfigFile(e.configFile)
		if err := e.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	logger, err := newLogger(cmd.ErrOrStderr(), e.v.GetString("log-level"), e.v.GetString("log-format"))
	if err != nil {
		return err
	}
	e.logger = logger
	e.logger.Debug("settings",
		slog.String("config", e.v.ConfigFileUsed()),
		slog.Int("max-steps", e.v.GetInt("max-steps")),
		slog.Int("max-backtrack-depth", e.v.GetInt("max-backtrack-depth")))
	return nil
}

// config returns the engine configuration the settings describe.
func (e *env) config() (meta.Config, error) {
	c := regx.DefaultConfig()
	c.MaxSteps = e.v.GetInt("max-steps")
	c.MaxBacktrackDepth = e.v.GetInt("max-backtrack-depth")
	c.Logger = e.logger
	return c, c.Validate()
}

// compile compiles pattern with the settings' configuration.
func (e *env) compile(pattern string, po *patternOptions) (*regx.Regex, error) {
	c, err := e.config()
	if err != nil {
		return nil, err
	}
	return regx.CompileFlagsWithConfig(pattern, po.String(), c)
}

// patternOptions are the compile-option flags shared by every subcommand.
type patternOptions struct {
	ignoreCase, multiline, dotAll, extended, xml bool
}

func (po *patternOptions) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&po.ignoreCase, "ignore-case", "i", false, "Match letters case-insensitively.")
	fs.BoolVarP(&po.multiline, "multiline", "m", false, "Let ^ and $ match at line boundaries.")
	fs.BoolVarP(&po.dotAll, "dot-all", "s", false, "Let . match line terminators.")
	fs.BoolVarP(&po.extended, "extended", "x", false, "Ignore whitespace and #-comments in the pattern.")
	fs.BoolVarP(&po.xml, "xml", "X", false, "Use the XML Schema dialect.")
}

// String returns the regx option letters.
func (po *patternOptions) String() string {
	var b strings.Builder
	for _, o := range []struct {
		set    bool
		letter byte
	}{
		{po.ignoreCase, 'i'},
		{po.multiline, 'm'},
		{po.dotAll, 's'},
		{po.extended, 'x'},
		{po.xml, 'X'},
	} {
		if o.set {
			b.WriteByte(o.letter)
		}
	}
	return b.String()
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := New()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitMatch
	case errors.Is(err, errNoMatch):
		return ExitNoMatch
	default:
		msg := err.Error()
		if !strings.HasPrefix(msg, "regx: ") {
			msg = "regx: " + msg
		}
		fmt.Fprintln(stderr, msg)
		return ExitTrouble
	}
}
