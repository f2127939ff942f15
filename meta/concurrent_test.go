package meta

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/coregx/regx/prog"
)

// TestConcurrentSearch runs searches on shared engines from many goroutines.
// Run with -race.
func TestConcurrentSearch(t *testing.T) {
	defer goleak.VerifyNone(t)

	patterns := []string{
		`hello`,             // UsePrefilter
		`\w+@host`,          // UseBoyerMoore
		`^start`,            // UseAnchored
		`(\d+)-(\d+)`,       // UsePrefilter over digits
		`(?i)(a|ab)(c|bcd)`, // backtracking into alternation
	}
	inputs := []string{
		"hello world",
		"me@host",
		"start here",
		"tel 12-345",
		"xABCD",
		strings.Repeat("a ", 200) + "abcd",
	}

	for _, pattern := range patterns {
		engine := mustCompile(t, pattern, 0)

		// Expected results computed serially.
		want := make([][]int, len(inputs))
		for i, in := range inputs {
			m := prog.NewMatch()
			if ok, _ := engine.SearchAt([]byte(in), 0, m); ok {
				want[i] = m.Indices(nil)
			}
		}

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for g := 0; g < 16; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m := prog.NewMatch()
				for iter := 0; iter < 50; iter++ {
					for i, in := range inputs {
						ok, err := engine.SearchAt([]byte(in), 0, m)
						var got []int
						if ok {
							got = m.Indices(nil)
						}
						if err != nil || fmt.Sprint(got) != fmt.Sprint(want[i]) {
							errs <- fmt.Errorf("%q on %q: got %v, %v; want %v", pattern, in, got, err, want[i])
							return
						}
					}
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}
	}
}
