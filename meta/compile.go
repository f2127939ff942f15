package meta

import (
	"errors"
	"log/slog"

	"github.com/coregx/regx/literal"
	"github.com/coregx/regx/prefilter"
	"github.com/coregx/regx/prog"
	"github.com/coregx/regx/syntax"
)

// Compile compiles a pattern with default flags and configuration.
//
// Steps:
//  1. Parse the pattern into a token tree
//  2. Lower the tree into an op graph
//  3. Extract head literals and the required literal
//  4. Build the prefilter and the Boyer-Moore pattern
//  5. Select the strategy
//
// Example:
//
//	engine, err := meta.Compile(`hello.*world`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, 0, DefaultConfig())
}

// CompileWithConfig compiles pattern under flags with a custom configuration.
// Errors from parsing and lowering are wrapped in *CompileError; an invalid
// configuration is reported as *ConfigError.
func CompileWithConfig(pattern string, flags syntax.Flags, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	p, err := prog.Compile(tree)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return build(tree, p, config), nil
}

func build(tree *syntax.Tree, p *prog.Prog, config Config) *Engine {
	ext := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: literal.DefaultConfig().MaxLiteralLen,
		MaxClassSize:  literal.DefaultConfig().MaxClassSize,
	})
	flags := tree.Flags

	prefixes := ext.ExtractPrefixes(tree)
	var pf prefilter.Prefilter
	if config.EnablePrefilter && !flags.Has(syntax.NoHeadLiteral) && usable(prefixes, config.MinLiteralLen) {
		pf = prefilter.NewBuilder(prefixes).Build()
	}

	required := ext.ExtractRequired(tree)
	var bm *prefilter.BMPattern
	if config.EnableBoyerMoore && !flags.Has(syntax.NoFixedString) &&
		required != nil && len(required.Bytes()) >= config.MinLiteralLen {
		bm = prefilter.NewBMPattern(required.Bytes(), required.Fold)
	}

	anchored := isStartAnchored(tree)
	strategy := selectStrategy(anchored, pf != nil, bm != nil)
	if anchored {
		// An anchored search makes a single attempt; a prefilter would only
		// add a scan.
		pf = nil
	}

	e := &Engine{
		prog:      p,
		tree:      tree,
		flags:     flags,
		prefixes:  prefixes,
		required:  required,
		prefilter: pf,
		bm:        bm,
		strategy:  strategy,
		config:    config,
		limits: prog.Limits{
			MaxSteps:          config.MaxSteps,
			MaxBacktrackDepth: config.MaxBacktrackDepth,
		},
		log:       config.logger(),
		full:      newFullProg(tree.AnchorEnd()),
		statePool: newSearchStatePool(p, pf),
	}

	e.log.Debug("compiled pattern",
		slog.String("pattern", tree.Pattern),
		slog.String("flags", flags.String()),
		slog.String("strategy", strategy.String()),
		slog.String("reason", StrategyReason(strategy)),
		slog.Int("ops", p.Len()),
		slog.Int("prefixes", prefixes.Len()),
		slog.Bool("boyer_moore", bm != nil),
	)
	return e
}

// usable reports whether every head literal is at least minLen bytes long.
func usable(prefixes *literal.Seq, minLen int) bool {
	if prefixes.IsEmpty() {
		return false
	}
	for i := 0; i < prefixes.Len(); i++ {
		if prefixes.Get(i).Len() < minLen {
			return false
		}
	}
	return true
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface. Syntax errors already carry the
// pattern and offset and are returned as they are.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return "regx: compiling " + e.Pattern + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
