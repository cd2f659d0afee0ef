package markdown_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	markdown "github.com/cklg/mdcore"
)

// TestParseConcurrentSafety exercises the default Engine (and the
// package-level Parse wrapping it) from many goroutines at once. Engine
// holds no mutable state beyond its immutable rule slice, and each call
// allocates its own ref table, so distinct inputs parsed concurrently must
// never interfere with one another.
func TestParseConcurrentSafety(t *testing.T) {
	inputs := []string{
		"# Title\n\nBody with *em* and **strong**.\n",
		"* a\n* b\n* c\n",
		"[x][1]\n\n[1]: https://example.com\n",
		"| a | b |\n|---|---|\n| 1 | 2 |\n",
		"> quoted\n> text\n",
		"plain paragraph\n",
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(inputs)*20)
	for i := 0; i < 20; i++ {
		for _, in := range inputs {
			wg.Add(1)
			go func(src string) {
				defer wg.Done()
				if _, err := markdown.Parse(src); err != nil {
					errs <- err
				}
			}(in)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
