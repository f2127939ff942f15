package literal_test

import (
	"fmt"

	"github.com/coregx/regx/literal"
	"github.com/coregx/regx/syntax"
)

func ExampleExtractor_ExtractPrefixes() {
	tree, _ := syntax.Parse(`(GET|POST|PUT) /`, 0)
	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(tree)
	for i := 0; i < seq.Len(); i++ {
		fmt.Printf("%q\n", seq.Get(i).Bytes)
	}
	// Output:
	// "GET /"
	// "PUT /"
	// "POST /"
}

func ExampleExtractor_ExtractRequired() {
	tree, _ := syntax.Parse(`\w+@example\.com`, 0)
	req := literal.New(literal.DefaultConfig()).ExtractRequired(tree)
	fmt.Println(req)
	// Output:
	// @example.com
}

func ExampleSeq_Minimize() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foobar"), true),
		literal.NewLiteral([]byte("foo"), true),
	)
	seq.Minimize()
	fmt.Println(seq.Len(), string(seq.Get(0).Bytes))
	// Output:
	// 1 foo
}
