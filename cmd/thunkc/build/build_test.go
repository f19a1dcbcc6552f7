package build

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zegl/thunk/compiler/passes/escape"
)

const program = `
[[closure]]
name = "wide"
captures = [{ name = "a1", type = "i64" }, { name = "a2", type = "i64" }]
params = [{ name = "b1", type = "i64" }, { name = "b2", type = "i64" }]
body = "(a1+b1)*(a2+b2)"
trace = true

[[call]]
closure = "wide"
captures = [4, 3]
args = [6, 7]
`

// A context built in the factory's own frame and returned by address
const danglingContext = `
%Ctx = type { i64, i64 }

define %Ctx* @foo(i64 %a1, i64 %a2) {
entry:
	%c = alloca %Ctx
	%p1 = getelementptr %Ctx, %Ctx* %c, i32 0, i32 0
	store i64 %a1, i64* %p1
	%p2 = getelementptr %Ctx, %Ctx* %c, i32 0, i32 1
	store i64 %a2, i64* %p2
	ret %Ctx* %c
}
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmitIR(t *testing.T) {
	path := writeFile(t, "wide.toml", program)

	compiled, err := EmitIR(path)
	require.NoError(t, err)

	assert.Contains(t, compiled, `source_filename = "wide.toml"`)
	assert.Contains(t, compiled, "@wide.invoke(")

	m, err := asm.ParseString("wide.ll", compiled)
	require.NoError(t, err)
	assert.NoError(t, escape.Check(m))
}

func TestEmitIRInvalidProgram(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[[closure]]
name = "bad"
body = "a + b"
`)

	_, err := EmitIR(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: undefined: a")
}

func TestRun(t *testing.T) {
	path := writeFile(t, "wide.toml", program)

	var buf bytes.Buffer
	require.NoError(t, Run(path, &buf))
	assert.Equal(t, "4 3 6 7\n100\n", buf.String())
}

func TestCheckFile(t *testing.T) {
	err := CheckFile(writeFile(t, "dangling.ll", danglingContext))

	var escapeErr *escape.Error
	require.ErrorAs(t, err, &escapeErr)
	assert.Equal(t, []escape.Violation{
		{Func: "foo", Reason: "address of stack memory %c returned"},
	}, escapeErr.Violations)
}

func TestCheckGeneratedFile(t *testing.T) {
	compiled, err := EmitIR(writeFile(t, "wide.toml", program))
	require.NoError(t, err)

	assert.NoError(t, CheckFile(writeFile(t, "wide.ll", compiled)))
}

func TestBuild(t *testing.T) {
	if _, err := exec.LookPath("clang"); err != nil {
		t.Skip("clang not found")
	}

	dir := t.TempDir()
	binary := filepath.Join(dir, "wide")
	llPath := filepath.Join(dir, "wide.ll")

	err := Build(writeFile(t, "wide.toml", program), binary, Options{EmitLLVM: llPath})
	require.NoError(t, err)

	_, err = os.Stat(llPath)
	assert.NoError(t, err)

	stdout, err := exec.Command(binary).Output()
	require.NoError(t, err)
	assert.Equal(t, "4 3 6 7\n100\n", string(stdout))
}

func TestBuildMissingClang(t *testing.T) {
	err := Build(writeFile(t, "wide.toml", program), filepath.Join(t.TempDir(), "out"), Options{
		Clang: "thunkc-no-such-clang",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thunkc-no-such-clang")
}
