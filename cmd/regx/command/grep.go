package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/regx"
)

const stdinName = "(standard input)"

type grepOptions struct {
	patternOptions
	onlyMatching bool
	count        bool
	lineNumbers  bool
	withFilename bool
	stats        bool
	jobs         int
}

func newGrep(e *env) *cobra.Command {
	o := &grepOptions{}
	cmd := &cobra.Command{
		Use:   "grep [flags] PATTERN [FILE...]",
		Short: "Print lines matching a pattern.",
		Long: "Print the lines of each FILE (standard input when none is given) that contain a match of PATTERN.\n\n" +
			"Files are scanned concurrently and printed in argument order. " +
			"The exit status is 0 when a line matched, 1 when none did and 2 on error.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, e, args[0], args[1:])
		},
	}
	fs := cmd.Flags()
	o.register(fs)
	fs.BoolVarP(&o.onlyMatching, "only-matching", "o", false, "Print only the matched parts of each line.")
	fs.BoolVarP(&o.count, "count", "c", false, "Print only a count of matching lines per file.")
	fs.BoolVarP(&o.lineNumbers, "line-number", "n", false, "Prefix each line with its line number.")
	fs.BoolVarP(&o.withFilename, "with-filename", "H", false, "Prefix each line with its file name; the default with several files.")
	fs.BoolVar(&o.stats, "stats", false, "Print scan statistics to standard error.")
	fs.IntVarP(&o.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Files scanned at once.")
	return cmd
}

// grepResult is the output of one file, buffered so that files can be
// scanned concurrently and printed in order.
type grepResult struct {
	out     bytes.Buffer
	lines   int
	matched int
	size    int
	err     error
}

func (o *grepOptions) run(cmd *cobra.Command, e *env, pattern string, files []string) error {
	re, err := e.compile(pattern, &o.patternOptions)
	if err != nil {
		return err
	}
	if o.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", o.jobs)
	}

	start := time.Now()
	var results []*grepResult
	if len(files) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		r := &grepResult{}
		if err := o.scan(cmd.Context(), re, stdinName, data, false, r); err != nil {
			return err
		}
		results = append(results, r)
		files = []string{stdinName}
	} else {
		results, err = o.scanFiles(cmd.Context(), re, files)
		if err != nil {
			return err
		}
	}

	stdout := cmd.OutOrStdout()
	var total grepResult
	troubled := false
	for i, r := range results {
		if r.err != nil {
			troubled = true
			e.logger.Error("scan failed", slog.String("file", files[i]), slog.Any("error", r.err))
			fmt.Fprintf(cmd.ErrOrStderr(), "regx: %v\n", r.err)
			continue
		}
		if _, err := r.out.WriteTo(stdout); err != nil {
			return err
		}
		total.lines += r.lines
		total.matched += r.matched
		total.size += r.size
	}

	if o.stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "scanned %s in %s: %s lines, %s matching, %s\n",
			humanize.Bytes(uint64(total.size)),
			pluralFiles(len(files)),
			humanize.Comma(int64(total.lines)),
			humanize.Comma(int64(total.matched)),
			time.Since(start).Round(time.Microsecond))
	}
	s := re.Engine().Stats()
	e.logger.Info("grep done",
		slog.Int("files", len(files)),
		slog.String("bytes", humanize.Bytes(uint64(total.size))),
		slog.Int("matched", total.matched),
		slog.Uint64("attempts", s.Attempts),
		slog.Uint64("limit_errors", s.LimitErrors))

	switch {
	case troubled:
		return fmt.Errorf("%d of %s could not be read", countErrors(results), pluralFiles(len(files)))
	case total.matched == 0:
		return errNoMatch
	}
	return nil
}

// scanFiles reads and scans files concurrently. A file that cannot be read
// is reported in its result; only cancellation aborts the scan.
func (o *grepOptions) scanFiles(ctx context.Context, re *regx.Regex, files []string) ([]*grepResult, error) {
	results := make([]*grepResult, len(files))
	prefix := o.withFilename || len(files) > 1

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for i, name := range files {
		r := &grepResult{}
		results[i] = r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				r.err = err
				return nil
			}
			return o.scan(ctx, re, name, data, prefix, r)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scan writes the output for one file into r.
func (o *grepOptions) scan(ctx context.Context, re *regx.Regex, name string, data []byte, prefix bool, r *grepResult) error {
	r.size = len(data)
	prefix = prefix || o.withFilename
	for lineNo := 1; len(data) > 0; lineNo++ {
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		r.lines++

		if o.onlyMatching && !o.count {
			matches := re.FindAllIndex(line, -1)
			if len(matches) > 0 {
				r.matched++
			}
			for _, m := range matches {
				if m[0] == m[1] {
					continue
				}
				o.writePrefix(&r.out, name, prefix, lineNo)
				r.out.Write(line[m[0]:m[1]])
				r.out.WriteByte('\n')
			}
			continue
		}
		if !re.Match(line) {
			continue
		}
		r.matched++
		if !o.count {
			o.writePrefix(&r.out, name, prefix, lineNo)
			r.out.Write(line)
			r.out.WriteByte('\n')
		}
	}
	if o.count {
		if prefix {
			r.out.WriteString(name)
			r.out.WriteByte(':')
		}
		r.out.WriteString(strconv.Itoa(r.matched))
		r.out.WriteByte('\n')
	}
	return nil
}

func (o *grepOptions) writePrefix(b *bytes.Buffer, name string, prefix bool, lineNo int) {
	if prefix {
		b.WriteString(name)
		b.WriteByte(':')
	}
	if o.lineNumbers {
		b.WriteString(strconv.Itoa(lineNo))
		b.WriteByte(':')
	}
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}

func countErrors(results []*grepResult) int {
	n := 0
	for _, r := range results {
		if r.err != nil {
			n++
		}
	}
	return n
}
