package parser

import "strings"

// Split tokenizes one command line into an argument vector and reports
// whether the command should run in the background.
//
// Tokens are space-delimited. A token opened by a single quote runs to
// the next single quote, keeping any spaces in between; an unterminated
// quote ends tokenizing. A trailing newline is a terminator, not
// content. A final bare "&" marks the command as background and is
// stripped from the vector.
func Split(line string) (argv []string, background bool) {
	line = strings.TrimSuffix(line, "\n")

	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}

		if line[i] == '\'' {
			i++
			end := strings.IndexByte(line[i:], '\'')
			if end < 0 {
				break
			}
			argv = append(argv, line[i:i+end])
			i += end + 1
			continue
		}

		end := strings.IndexByte(line[i:], ' ')
		if end < 0 {
			argv = append(argv, line[i:])
			break
		}
		argv = append(argv, line[i:i+end])
		i += end + 1
	}

	if n := len(argv); n > 0 && argv[n-1] == "&" {
		background = true
		argv = argv[:n-1]
	}
	return argv, background
}
