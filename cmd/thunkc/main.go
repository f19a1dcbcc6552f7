package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/zegl/thunk/cmd/thunkc/build"
	"github.com/zegl/thunk/internal/observability"
)

const usage = `Usage:
  thunkc build [flags] program.toml   compile to a native binary with clang
  thunkc run [flags] program.toml     evaluate with Go thunks
  thunkc check [flags] file.ll        report functions leaking stack memory
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	os.Exit(run(os.Args[1], os.Args[2:]))
}

func run(command string, args []string) int {
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	debug := flags.Bool("debug", false, "log parsed programs and generated IR")

	var output, emitLLVM, clang string
	var optimize bool

	if command == "build" {
		flags.StringVarP(&output, "output", "o", "output-binary", "path of the compiled binary")
		flags.BoolVarP(&optimize, "optimize", "O", false, "compile with -O3")
		flags.StringVar(&emitLLVM, "emit-llvm", "", "also write the generated LLVM IR to this path")
		flags.StringVar(&clang, "clang", "clang", "clang executable")
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}

	observability.InitLogger("thunkc", os.Stderr, *debug)

	if flags.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
	path := flags.Arg(0)

	var err error

	switch command {
	case "build":
		err = build.Build(path, output, build.Options{
			Optimize: optimize,
			EmitLLVM: emitLLVM,
			Clang:    clang,
		})
	case "run":
		err = build.Run(path, os.Stdout)
	case "check":
		err = build.CheckFile(path)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s", command, usage)
		return 1
	}

	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("failed")
		return 1
	}

	return 0
}
