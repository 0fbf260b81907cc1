// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"movehlir/internal/diag"
	"movehlir/internal/fixture"
	"movehlir/internal/hast"
	"movehlir/internal/lower"
	"movehlir/internal/tast"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hlirc <file.hlir>")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	prog, err := fixture.Parse(path, string(source))
	if err != nil {
		color.Red("%s", fixture.FormatParseError(string(source), err))
		os.Exit(1)
	}

	env := diag.NewEnv()
	out := lowerProgram(env, prog)

	src := diag.NewSourceSet(map[string]string{path: string(source)})
	fmt.Print(diag.FormatAll(env, src))

	fmt.Println(hast.Print(&out))

	if env.HasErrors() {
		os.Exit(1)
	}
	color.Green("✅ lowered %s", path)
}

// lowerProgram recovers from an internal compiler error so the CLI can
// report it cleanly instead of dumping a Go stack trace: an ICE means the
// tree violated an invariant the rest of the pass assumes, not something
// the caller can work around, so the process still exits non-zero.
func lowerProgram(env *diag.Env, prog tast.Program) (out hast.Program) {
	defer func() {
		if r := recover(); r != nil {
			color.Red("internal compiler error: %v", r)
			os.Exit(1)
		}
	}()
	return lower.Program(env, prog)
}
