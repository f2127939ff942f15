package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coregx/regx"
)

type matchOptions struct {
	patternOptions
	at     int
	search bool
}

func newMatch(e *env) *cobra.Command {
	o := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match [flags] PATTERN SUBJECT",
		Short: "Match a pattern at one position of a subject and print its groups.",
		Long: "Match PATTERN against SUBJECT starting exactly at byte offset --at, or at the first " +
			"position from --at on with --search, and print one line per group:\n\n" +
			"\tGROUP NAME START END TEXT\n\n" +
			"Groups that did not participate print - for their offsets. The exit status is 1 when there is no match.",
		Example: "  regx match '(?<user>\\w+)@(\\w+)' bob@example\n" +
			"  regx match --search --at 4 '\\d+' 'abc 123 456'",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, e, args[0], args[1])
		},
	}
	fs := cmd.Flags()
	o.register(fs)
	fs.IntVar(&o.at, "at", 0, "Byte offset to match at.")
	fs.BoolVar(&o.search, "search", false, "Search forward from --at instead of matching there only.")
	return cmd
}

func (o *matchOptions) run(cmd *cobra.Command, e *env, pattern, subject string) error {
	re, err := e.compile(pattern, &o.patternOptions)
	if err != nil {
		return err
	}
	if o.at < 0 || o.at > len(subject) {
		return fmt.Errorf("--at %d is outside the subject (0 to %d)", o.at, len(subject))
	}

	m := regx.NewMatch()
	var ok bool
	if o.search {
		ok, err = re.SearchAt([]byte(subject), o.at, m)
	} else {
		ok, err = re.MatchAt([]byte(subject), o.at, m)
	}
	if err != nil {
		return err
	}
	if !ok {
		return errNoMatch
	}
	return writeGroups(cmd.OutOrStdout(), re, subject, m)
}

func writeGroups(w io.Writer, re *regx.Regex, subject string, m *regx.Match) error {
	names := re.SubexpNames()
	indices := m.Indices(nil)
	for i := range len(indices) / 2 {
		name := names[i]
		if name == "" {
			name = "-"
		}
		start, end := indices[2*i], indices[2*i+1]
		var err error
		if start < 0 {
			_, err = fmt.Fprintf(w, "%d\t%s\t-\t-\n", i, name)
		} else {
			_, err = fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", i, name, start, end, strconv.Quote(subject[start:end]))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
