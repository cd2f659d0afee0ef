// Command mdcheck parses a markdown document and prints its Node tree.
// It reads from a file argument, or from stdin when none is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	markdown "github.com/cklg/mdcore"
)

func main() {
	inline := flag.Bool("inline", false, "parse as a single inline run instead of a full document")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-inline] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	src, err := readSource(flag.Arg(0))
	if err != nil {
		log.Fatalf("mdcheck: %v", err)
	}

	var nodes []markdown.Node
	if *inline {
		nodes, err = markdown.ParseInline(src)
	} else {
		nodes, err = markdown.Parse(src)
	}
	if err != nil {
		log.Fatalf("mdcheck: parse: %v", err)
	}

	fmt.Print(markdown.Debug(nodes))
}

func readSource(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
