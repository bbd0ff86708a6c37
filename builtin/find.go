package builtin

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mwantia/interp/registry"
)

// Find implements spec §4.6/§6's `find <pattern> [/V] [/I] [-f:path]`:
// a substring filter over standard input (or a file via -f:path),
// /V inverting the match and /I making it case-insensitive.
func (h *Handler) Find(interp registry.Interpreter, pattern string, invert bool, ignoreCase bool, file string) error {
	in := interp.StdIO().In
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		defer f.Close()
		in = f
	}

	needle := pattern
	if ignoreCase {
		needle = strings.ToLower(needle)
	}

	out := interp.StdIO().Out
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		haystack := line
		if ignoreCase {
			haystack = strings.ToLower(haystack)
		}

		matches := strings.Contains(haystack, needle)
		if matches != invert {
			fmt.Fprintln(out, line)
		}
	}

	return scanner.Err()
}
