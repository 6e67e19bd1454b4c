package zolo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoads(t *testing.T) {
	m, err := Loads("a: 1\n")
	require.NoError(t, err)
	require.Equal(t, &String{Value: "1"}, m.Entries["a"])

	// Recoverable problems do not fail the permissive loader.
	m, err = Loads("a: 1\na: 2\n")
	require.NoError(t, err)
	require.Equal(t, &String{Value: "1"}, m.Entries["a"])
}

func TestLoadStrict(t *testing.T) {
	m, err := LoadStrict("a: 1\n")
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	_, err = LoadStrict("a: 1\na: 2\n")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestLoadAndDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.demo.zolo")

	m := NewMapping()
	m.Set("name", &String{Value: "demo"})
	m.Set("port", &Integer{Value: 9000})
	require.NoError(t, Dump(m, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, m, got)

	_, err = Load(filepath.Join(dir, "missing.zolo"))
	require.Error(t, err)
}

func TestDump_RejectsBadData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zolo")

	m := NewMapping()
	m.Set("bad key", &String{Value: "x"})
	require.Error(t, Dump(m, path))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileKind(t *testing.T) {
	type tc struct {
		path string
		want string
	}

	tests := map[string]tc{
		"kind and name":  {path: "service.web.zolo", want: "service"},
		"kind only":      {path: "env.zolo", want: "env"},
		"with directory": {path: "/etc/zolo/service.web.zolo", want: "service"},
		"no dot":         {path: "README", want: ""},
		"leading dot":    {path: ".hidden", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, FileKind(tt.path))
		})
	}
}

type maxDepthRule struct{ max int }

func (r maxDepthRule) Check(res *ParseResult) []Diagnostic {
	var out []Diagnostic
	for i, ctx := range res.Contexts {
		if len(ctx.Path) > r.max {
			out = append(out, Diagnostic{
				Range:    lineRange(i, 0, 1),
				Severity: SeverityWarning,
				Code:     "X0001",
				Message:  "nesting too deep",
			})
		}
	}
	return out
}

func TestTokenizeWith(t *testing.T) {
	input := "a:\n    b:\n        c: 1\n"

	res := TokenizeWith(input, "service.x.zolo", nil)
	require.Empty(t, res.Diagnostics)

	res = TokenizeWith(input, "service.x.zolo", maxDepthRule{max: 1})
	require.NotEmpty(t, res.Diagnostics)
	require.Equal(t, "X0001", res.Diagnostics[len(res.Diagnostics)-1].Code)
}
