package latex

import (
	"regexp"
	"sort"
	"strings"
)

// The compiler wraps long lines wherever it pleases, so a file path can be
// split across lines. The scan therefore runs over the combined output with
// every newline removed, exactly as the messages are matched below.
var missingPatterns = []*regexp.Regexp{
	regexp.MustCompile("LaTeX (?:Error|Warning): File `(.+?)' ?not ?found"),
	regexp.MustCompile(`Failed to find one or more bibliography files:\s*'(.+?)'`),
	regexp.MustCompile("Missing input file: '`?(.+?)'"),
}

// ScanMissing extracts the set of files the compiler complained about,
// deduplicated and sorted.
func ScanMissing(stdout, stderr string) []string {
	joined := strings.ReplaceAll(stdout+stderr, "\n", "")

	seen := make(map[string]struct{})
	for _, pat := range missingPatterns {
		for _, m := range pat.FindAllStringSubmatch(joined, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}
