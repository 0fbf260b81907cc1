// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"movehlir/internal/diag"
	"movehlir/internal/fixture"
	"movehlir/internal/hast"
	"movehlir/internal/lower"
)

const PROMPT = ">> "

// Start runs a read-lower-print loop over the fixture notation. Input is
// buffered a block at a time, terminated by a blank line, since a single
// module or script declaration rarely fits on one line.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)

		var block strings.Builder
		sawLine := false
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				break
			}
			sawLine = true
			block.WriteString(line)
			block.WriteString("\n")
		}

		if !sawLine {
			return
		}

		source := block.String()

		prog, err := fixture.Parse("<repl>", source)
		if err != nil {
			fmt.Fprintln(out, fixture.FormatParseError(source, err))
			continue
		}

		env := diag.NewEnv()
		lowered := lower.Program(env, prog)

		src := diag.NewSourceSet(map[string]string{"<repl>": source})
		fmt.Fprint(out, diag.FormatAll(env, src))
		fmt.Fprintln(out, hast.Print(&lowered))
	}
}
