package tagspace_test

import (
	"fmt"
	"log"
	"sort"

	tagspace "github.com/DecAngel/tagspace"
	"github.com/DecAngel/tagspace/tag"
)

// Example demonstrates tagging a range of integers along several dimensions
// and querying by intersection.
func Example() {
	sp := tagspace.New[int]()

	if err := sp.Tag(tagspace.Tags{"fib": tag.Bool(true)}, 1, 2, 3, 5, 8, 13); err != nil {
		log.Fatal(err)
	}
	if err := sp.Tag(tagspace.Tags{"prime": tag.Bool(true)}, 2, 3, 5, 7, 11, 13, 17, 19); err != nil {
		log.Fatal(err)
	}
	if err := sp.Tag(tagspace.Tags{"odd": tag.Bool(true)}, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19); err != nil {
		log.Fatal(err)
	}
	for i := 1; i < 20; i++ {
		if err := sp.Tag(tagspace.Tags{"value": tag.Int(int64(i))}, i); err != nil {
			log.Fatal(err)
		}
	}

	small, err := sp.Find(tagspace.Query{
		"fib":   tag.Exact(tag.Bool(true)),
		"prime": tag.Exact(tag.Bool(true)),
		"value": tag.Where(func(v tag.Value) bool { return v.Float64() < 10 }),
	})
	if err != nil {
		log.Fatal(err)
	}
	sort.Ints(small)
	fmt.Println("fib primes below 10:", small)

	sp.RemoveObjects(2, 13)

	rest, err := sp.Find(tagspace.Query{
		"fib":   tag.Exact(tag.Bool(true)),
		"prime": tag.Exact(tag.Bool(true)),
	})
	if err != nil {
		log.Fatal(err)
	}
	sort.Ints(rest)
	fmt.Println("fib primes after removal:", rest)

	shared := sp.SharedTags(1, 5)
	names := make([]string, 0, len(shared))
	for name := range shared {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("shared %s=%s\n", name, shared[name])
	}

	// Output:
	// fib primes below 10: [2 3 5]
	// fib primes after removal: [3 5]
	// shared fib=true
	// shared odd=true
}

// Example_strict demonstrates strict mode, where every dimension must be
// declared before use.
func Example_strict() {
	sp := tagspace.New[string](tagspace.WithStrict())

	if err := sp.Define("env"); err != nil {
		log.Fatal(err)
	}
	if err := sp.Tag(tagspace.Tags{"env": tag.String("prod")}, "api", "worker"); err != nil {
		log.Fatal(err)
	}

	err := sp.Tag(tagspace.Tags{"region": tag.String("eu")}, "api")
	fmt.Println("undeclared dimension:", err)

	prod, err := sp.Find(tagspace.Query{"env": tag.Exact(tag.String("prod"))})
	if err != nil {
		log.Fatal(err)
	}
	sort.Strings(prod)
	fmt.Println("prod:", prod)

	// Output:
	// undeclared dimension: unknown tag name: "region"
	// prod: [api worker]
}
