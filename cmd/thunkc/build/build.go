package build

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/llir/llvm/asm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zegl/thunk/compiler/compiler"
	"github.com/zegl/thunk/compiler/passes/escape"
	"github.com/zegl/thunk/config"
)

type Options struct {
	Optimize bool

	// EmitLLVM is an additional path the generated IR is written to
	EmitLLVM string

	// Clang is the compiler used to turn IR into a binary, "clang" if empty
	Clang string
}

// Build compiles the closure program at path into an executable
func Build(path, outputBinaryPath string, opts Options) error {
	logger := log.With().Str("build", uuid.NewString()).Str("input", path).Logger()

	compiled, err := emitIR(path, logger)
	if err != nil {
		return err
	}

	// Get dir to save temporary files in
	tmpDir, err := os.MkdirTemp("", "thunkc")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	llPath := filepath.Join(tmpDir, "main.ll")

	// Write LLVM IR to disk
	if err := os.WriteFile(llPath, []byte(compiled), 0o666); err != nil {
		return err
	}

	if opts.EmitLLVM != "" {
		if err := os.WriteFile(opts.EmitLLVM, []byte(compiled), 0o666); err != nil {
			return err
		}
		logger.Info().Str("path", opts.EmitLLVM).Msg("wrote LLVM IR")
	}

	if outputBinaryPath == "" {
		outputBinaryPath = "output-binary"
	}

	clang := opts.Clang
	if clang == "" {
		clang = "clang"
	}

	clangArgs := []string{
		"-Wno-override-module", // Disable override target triple warnings
		llPath,                 // Path to LLVM IR
		"-o", outputBinaryPath, // Output path
	}

	if opts.Optimize {
		clangArgs = append(clangArgs, "-O3")
	}

	logger.Debug().Strs("args", clangArgs).Msg("invoking " + clang)

	// Invoke clang compiler to compile LLVM IR to a binary executable
	cmd := exec.Command(clang, clangArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", clang, err, strings.TrimSpace(string(output)))
	}

	if len(output) > 0 {
		return fmt.Errorf("%s failure: %s", clang, strings.TrimSpace(string(output)))
	}

	logger.Info().Str("output", outputBinaryPath).Msg("built")

	return nil
}

// EmitIR returns the LLVM IR for the closure program at path
func EmitIR(path string) (string, error) {
	return emitIR(path, log.With().Str("input", path).Logger())
}

func emitIR(path string, logger zerolog.Logger) (string, error) {
	prog, err := config.Load(path)
	if err != nil {
		return "", err
	}

	if logger.GetLevel() <= zerolog.DebugLevel {
		logger.Debug().Msg(pretty.Sprint(prog))
	}

	c := compiler.NewCompiler()
	c.Module().SourceFilename = filepath.Base(path)

	if err := c.Compile(prog); err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}

	// The generated code must never hand out a frame slot
	if err := escape.Check(c.Module()); err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}

	compiled := c.GetIR()

	logger.Debug().Int("closures", len(prog.Closures)).Int("calls", len(prog.Calls)).Msg("compiled")
	logger.Debug().Msg(compiled)

	return compiled, nil
}

// Run evaluates the closure program at path with Go thunks, writing the
// same output the compiled binary would
func Run(path string, w io.Writer) error {
	prog, err := config.Load(path)
	if err != nil {
		return err
	}

	return prog.Run(w)
}

// CheckFile parses an LLVM IR file and reports functions leaking the
// address of their stack memory
func CheckFile(path string) error {
	m, err := asm.ParseFile(path)
	if err != nil {
		return err
	}

	if err := escape.Check(m); err != nil {
		return err
	}

	log.Debug().Str("input", path).Int("funcs", len(m.Funcs)).Msg("no stack escapes")

	return nil
}
