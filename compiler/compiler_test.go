package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/zegl/thunk/cmd/thunkc/build"
)

var expectRe = regexp.MustCompile(`(?m)^#> ?(.*)$`)

func TestAllPrograms(t *testing.T) {
	files, _ := filepath.Glob("testdata/*.toml")
	if len(files) == 0 {
		t.Error("No test files found")
	}

	_, clangErr := exec.LookPath("clang")

	for _, file := range files {
		file := file

		t.Run(filepath.Base(file)+"/run", func(t *testing.T) {
			if err := runAndCheck(t, file); err != nil {
				t.Error("failed: " + err.Error())
			}
		})

		for _, withOptimize := range []bool{false, true} {
			withOptimize := withOptimize
			t.Run(fmt.Sprintf("%s/optimize:%v", filepath.Base(file), withOptimize), func(t *testing.T) {
				if clangErr != nil {
					t.Skip("clang not found")
				}
				if err := buildRunAndCheck(t, file, withOptimize); err != nil {
					t.Error("failed: " + err.Error())
				}
			})
		}
	}
}

func expected(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, m := range expectRe.FindAllStringSubmatch(string(content), -1) {
		lines = append(lines, m[1])
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func compare(t *testing.T, expect, output string) error {
	output = strings.TrimSpace(strings.ReplaceAll(output, "\r\n", "\n"))
	if expect == output {
		return nil
	}

	t.Logf("Expected:\n---\n'%s'\n---\nResult:\n---\n'%s'\n---\n", expect, output)

	return errors.New("Unexpected result")
}

func runAndCheck(t *testing.T, path string) error {
	expect, err := expected(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := build.Run(path, &buf); err != nil {
		return err
	}

	return compare(t, expect, buf.String())
}

func buildRunAndCheck(t *testing.T, path string, withOptimize bool) error {
	expect, err := expected(path)
	if err != nil {
		return err
	}

	outputBinaryPath := filepath.Join(t.TempDir(), "exec")

	if err := build.Build(path, outputBinaryPath, build.Options{Optimize: withOptimize}); err != nil {
		return err
	}

	stdout, err := exec.Command(outputBinaryPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, stdout)
	}

	return compare(t, expect, string(stdout))
}
