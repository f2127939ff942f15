package regx_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/coregx/regx"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := regx.Compile(`\d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Match([]byte("hello 123")))
	// Output: true
}

// ExampleCompileXML validates values the way an XML Schema pattern facet
// does: the whole value must match.
func ExampleCompileXML() {
	re, err := regx.CompileXML(`[A-Z]{2}\d{4}`)
	if err != nil {
		panic(err)
	}

	for _, v := range []string{"AB1234", "AB12345", "ab1234"} {
		ok, _ := re.FullMatchString(v)
		fmt.Println(v, ok)
	}
	// Output:
	// AB1234 true
	// AB12345 false
	// ab1234 false
}

// ExampleRegex_MatchAt shows anchored matching with group access.
func ExampleRegex_MatchAt() {
	re := regx.MustCompile(`(a*)\1`)
	m := regx.NewMatch()
	input := []byte("aaaa")

	ok, err := re.MatchAt(input, 0, m)
	if err != nil || !ok {
		panic("no match")
	}
	end, _ := m.End(0)
	g1, _ := m.Group(input, 1)
	fmt.Println(end, string(g1))

	_, err = m.Start(5)
	fmt.Println(errors.Is(err, regx.ErrIndexOutOfRange))
	// Output:
	// 4 aa
	// true
}

// ExampleRegex_FindStringSubmatch uses a backreference and a lookbehind.
func ExampleRegex_FindStringSubmatch() {
	re := regx.MustCompile(`(?<=\$)(\d+)\.(\d\d)`)
	fmt.Printf("%q\n", re.FindStringSubmatch("total: $42.50"))
	// Output: ["42.50" "42" "50"]
}

// ExampleRegex_SubexpNames demonstrates named capture groups.
func ExampleRegex_SubexpNames() {
	re := regx.MustCompile(`(?<year>\d{4})-(?<month>\d{2})-(\d{2})`)
	fmt.Println(re.NumSubexp())
	fmt.Printf("%q\n", re.SubexpNames())
	fmt.Println(re.ReplaceAllString("2024-03-15", "${month}/$3/$year"))
	// Output:
	// 3
	// ["" "year" "month" ""]
	// 03/15/2024
}

// ExampleRegex_Split splits around separators.
func ExampleRegex_Split() {
	re := regx.MustCompile(`\s*[,;]\s*`)
	fmt.Printf("%q\n", re.Split("a , b;c ;d", -1))
	// Output: ["a" "b" "c" "d"]
}

// ExampleCompileWithConfig bounds catastrophic backtracking.
func ExampleCompileWithConfig() {
	config := regx.DefaultConfig()
	config.MaxSteps = 10_000

	re, err := regx.CompileFlagsWithConfig(`(a|aa)*c`, "F", config)
	if err != nil {
		panic(err)
	}
	_, err = re.MatchAt([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), 0, regx.NewMatch())
	fmt.Println(errors.Is(err, regx.ErrStepLimitExceeded))
	// Output: true
}

// ExampleCache shares compiled patterns between callers.
func ExampleCache() {
	c := regx.NewCache(time.Minute, regx.DefaultConfig())
	a := c.MustGet(`\p{Lu}\p{Ll}+`, "X")
	b := c.MustGet(`\p{Lu}\p{Ll}+`, "X")

	ok, _ := a.FullMatchString("Zürich")
	fmt.Println(a == b, ok, c.Len())
	// Output: true true 1
}
