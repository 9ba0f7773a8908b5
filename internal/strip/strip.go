// Package strip removes TeX comments from source text.
package strip

import "strings"

// verbatimEnvs are environments whose bodies must be copied through
// untouched: a % inside them is literal content, not a comment.
var verbatimEnvs = []string{
	"verbatim",
	"verbatim*",
	"Verbatim",
	"lstlisting",
	"minted",
}

// Result reports what a strip pass did to one piece of text.
type Result struct {
	Text    string
	Removed int
}

// Comments removes the text after every unescaped % up to the end of the
// line. The % itself is kept so that TeX's end-of-line behaviour (comment
// swallows the newline) is unchanged. A % preceded by an odd number of
// backslashes is the literal \% and is left alone. Bodies of verbatim-like
// environments are copied through verbatim.
func Comments(text string) Result {
	var (
		b       strings.Builder
		removed int
		env     string // active verbatim environment, "" when none
	)
	b.Grow(len(text))

	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		if env != "" {
			b.WriteString(line)
			if hasEnvEnd(line, env) {
				env = ""
			}
			continue
		}

		kept, n := stripLine(line)
		b.WriteString(kept)
		removed += n

		// Only an opener surviving the strip can start a verbatim body.
		if name := envBegin(kept); name != "" && !hasEnvEnd(kept, name) {
			env = name
		}
	}

	return Result{Text: b.String(), Removed: removed}
}

// stripLine drops everything after the first unescaped % on a single line,
// keeping the % and the trailing newline if present.
func stripLine(line string) (string, int) {
	backslashes := 0
	for i, r := range line {
		switch r {
		case '\\':
			backslashes++
			continue
		case '%':
			if backslashes%2 == 0 {
				rest := line[i+len("%"):]
				tail := ""
				if strings.HasSuffix(rest, "\n") {
					tail = "\n"
				}
				if strings.TrimSuffix(rest, "\n") == "" {
					return line, 0
				}
				return line[:i+1] + tail, 1
			}
		}
		backslashes = 0
	}
	return line, 0
}

func envBegin(line string) string {
	for _, env := range verbatimEnvs {
		if strings.Contains(line, `\begin{`+env+`}`) {
			return env
		}
	}
	return ""
}

func hasEnvEnd(line string, env string) bool {
	return strings.Contains(line, `\end{`+env+`}`)
}
