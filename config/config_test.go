package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zegl/thunk/compiler/compiler/types"
)

const mixedProgram = `
[[closure]]
name = "mixed"
captures = [{ name = "a1", type = "i32" }, { name = "a2", type = "int64" }]
params = [{ name = "b1", type = "i64" }, { name = "b2", type = "i32" }]
body = "(a1+b1)*(a2+b2)"
trace = true

[[call]]
closure = "mixed"
captures = [4, 3]
args = [6, 7]
`

func TestParse(t *testing.T) {
	prog, err := Parse(mixedProgram)
	require.NoError(t, err)

	require.Len(t, prog.Closures, 1)
	d := prog.Closures[0]
	assert.Equal(t, "mixed", d.Name)
	assert.True(t, d.Trace)
	assert.Same(t, types.I64, d.Result)
	assert.Same(t, types.I32, d.Captures[0].Type)
	assert.Same(t, types.I64, d.Captures[1].Type)
	assert.Equal(t, "a2", d.Captures[1].Name)
	assert.Equal(t, "((a1 + b1) * (a2 + b2))", d.Body.String())

	require.Len(t, prog.Calls, 1)
	assert.Equal(t, []int64{4, 3}, prog.Calls[0].Captures)
	assert.Equal(t, []int64{6, 7}, prog.Calls[0].Args)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.toml")
	require.NoError(t, os.WriteFile(path, []byte(mixedProgram), 0o644))

	prog, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, prog.Closures, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config load failed")
}

func TestParseErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		msg   string
	}{
		"syntax": {
			input: `[[closure]`,
			msg:   "config parse failed",
		},
		"param named like the context": {
			input: `
[[closure]]
name = "f"
params = [{ name = "closure.ctx", type = "i64" }]
body = "1"
`,
			msg: `f: invalid name "closure.ctx"`,
		},
		"unknown key": {
			input: `
[[closure]]
name = "x"
body = "1"
color = "red"
`,
			msg: "unknown keys: closure.color",
		},
		"unknown type": {
			input: `
[[closure]]
name = "x"
captures = [{ name = "a", type = "float" }]
body = "a"
`,
			msg: "closure x: a: unknown type: float",
		},
		"bad result": {
			input: `
[[closure]]
name = "x"
result = "u8"
body = "1"
`,
			msg: "closure x: unknown type: u8",
		},
		"bad body": {
			input: `
[[closure]]
name = "x"
body = "1 +"
`,
			msg: "closure x: body: column 4: unexpected EOF",
		},
		"undefined name": {
			input: `
[[closure]]
name = "x"
body = "a + 1"
`,
			msg: "x: undefined: a",
		},
		"unknown closure": {
			input: `
[[call]]
closure = "nope"
`,
			msg: "call 0: no such closure: nope",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
