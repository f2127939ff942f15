package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/coregx/regx"
	"github.com/coregx/regx/meta"
)

func newExplain(e *env) *cobra.Command {
	po := &patternOptions{}
	cmd := &cobra.Command{
		Use:   "explain [flags] PATTERN",
		Short: "Show how a pattern is parsed, compiled and searched for.",
		Long: "Print the token tree of PATTERN, the op graph it lowers to, " +
			"the literals extracted from it and the search strategy they select.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := e.compile(args[0], po)
			if err != nil {
				return err
			}
			return explain(cmd.OutOrStdout(), re)
		},
	}
	po.register(cmd.Flags())
	return cmd
}

func explain(w io.Writer, re *regx.Regex) error {
	eng := re.Engine()
	var b strings.Builder

	fmt.Fprintf(&b, "pattern:  %s\n", strconv.Quote(re.String()))
	if f := eng.Flags().String(); f != "" {
		fmt.Fprintf(&b, "options:  %s\n", f)
	}
	fmt.Fprintf(&b, "groups:   %d", re.NumSubexp())
	if names := namedGroups(re.SubexpNames()); names != "" {
		fmt.Fprintf(&b, " (%s)", names)
	}
	b.WriteString("\n\ntree:\n")
	b.WriteString(eng.Tree().Dump())
	p := eng.Prog()
	fmt.Fprintf(&b, "\nprogram: %d ops, %d reachable\n", p.Len(), p.Reachable())
	b.WriteString(p.String())

	b.WriteString("\nliterals:\n")
	if prefixes := eng.Prefixes(); prefixes.IsEmpty() {
		b.WriteString("  prefixes: none\n")
	} else {
		fmt.Fprintf(&b, "  prefixes: %d\n", prefixes.Len())
		for i := range prefixes.Len() {
			lit := prefixes.Get(i)
			kind := "prefix"
			if lit.Complete {
				kind = "complete"
			}
			fmt.Fprintf(&b, "    %s (%s)\n", strconv.Quote(string(lit.Bytes)), kind)
		}
		if shared := prefixes.LongestCommonPrefix(); prefixes.Len() > 1 && len(shared) > 0 {
			fmt.Fprintf(&b, "  shared:   %s\n", strconv.Quote(string(shared)))
		}
	}
	if req := eng.Required(); req != nil {
		fold := ""
		if req.Fold {
			fold = ", case-insensitive"
		}
		fmt.Fprintf(&b, "  required: %s (%s%s)\n", strconv.Quote(req.String()), humanize.Bytes(uint64(len(req.Bytes()))), fold)
	} else {
		b.WriteString("  required: none\n")
	}

	s := eng.Strategy()
	fmt.Fprintf(&b, "\nstrategy: %s, %s\n", s, meta.StrategyReason(s))
	if pf := eng.Prefilter(); pf != nil {
		fmt.Fprintf(&b, "  prefilter:   %T, %s", pf, humanize.Bytes(uint64(pf.HeapBytes())))
		if pf.IsComplete() {
			b.WriteString(", complete")
		}
		b.WriteByte('\n')
	}
	if bm := eng.BoyerMoore(); bm != nil {
		fmt.Fprintf(&b, "  boyer-moore: %s\n", bm)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func namedGroups(names []string) string {
	var named []string
	for i, name := range names {
		if name != "" {
			named = append(named, name+"="+strconv.Itoa(i))
		}
	}
	return strings.Join(named, ", ")
}
