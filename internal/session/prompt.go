package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"RoboAdvisor/internal/model"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidSymbol reports whether s looks like a ticker symbol.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// CollectSymbols prompts for one symbol per line until an empty line or EOF.
// Input is upper-cased; invalid entries are rejected and duplicates ignored.
func CollectSymbols(r io.Reader, w io.Writer) ([]string, error) {
	reader := bufio.NewReader(r)
	seen := map[string]bool{}
	var symbols []string

	for {
		fmt.Fprint(w, "Please enter a stock symbol (e.g. MSFT), or press enter when done: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read symbol: %w", err)
		}
		s := strings.ToUpper(strings.TrimSpace(line))
		if s == "" {
			break
		}

		switch {
		case !ValidSymbol(s):
			fmt.Fprintf(w, "%q is not a valid symbol. Expecting 1-5 letters, like MSFT.\n", s)
		case seen[s]:
			fmt.Fprintf(w, "%s is already in the list.\n", s)
		default:
			seen[s] = true
			symbols = append(symbols, s)
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	if len(symbols) == 0 {
		fmt.Fprintln(w)
		return nil, model.ErrNoSymbols
	}
	fmt.Fprintf(w, "\nYou entered: %s\n", strings.Join(symbols, ", "))
	return symbols, nil
}
