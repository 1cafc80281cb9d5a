package app

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klc2xkb/internal/diagnostic"
	"klc2xkb/internal/resolve"
	"klc2xkb/internal/xkb"
)

const testKLC = `KBD	test	"Test Layout"

COPYRIGHT	"(c) 2024"

LAYOUT		;an extra '@' at the end is a dead key

//SC	VK_	Cap	0	1	2	6	7
01	ESCAPE	0	001b	-1	-1	-1	-1
10	Q	1	q	Q	-1	@	-1
12	E	1	e	E	-1	20ac	-1
1a	OEM_4	0	00b4@	0060@	-1	-1	-1
1e	A	1	a	A	-1	-1	-1

DEADKEY	00b4

0061	00e1	// a -> á
0065	00e9	// e -> é

KEYNAME_DEAD

00b4	"ACUTE ACCENT"
0060	"GRAVE ACCENT"

ENDKBD
`

const testDK = `default partial alphanumeric_keys
xkb_symbols "basic" {
    include "latin"
    name[Group1] = "Danish";
    key <AD01> { [ q, Q ] };
};
`

const testLatin = `default partial alphanumeric_keys
xkb_symbols "basic" {
    key <AC01> { [ a, A ] };
    key <AD03> { [ e, E ] };
};
`

const wantOutput = `default partial alphanumeric_keys
xkb_symbols "basic" {
    include "dk(basic)"
    name[Group1] = "Test Layout";

    key <AD01> { [ q, Q, at, NoSymbol ] };
    key <AD03> { [ e, E, EuroSign, NoSymbol ] };
    key <AD11> { [ dead_acute, dead_grave, NoSymbol, NoSymbol ] };
};
`

// setup writes a symbols directory and returns a config pointing at it.
func setup(t *testing.T) (Config, string) {
	t.Helper()

	dir := t.TempDir()
	symbols := filepath.Join(dir, "symbols")
	require.NoError(t, os.Mkdir(symbols, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(symbols, "dk"), []byte(testDK), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(symbols, "latin"), []byte(testLatin), 0o600))

	cfg := DefaultConfig()
	cfg.SymbolsDir = symbols
	cfg.LogLevel = "debug"

	return cfg, dir
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestConvertFile(t *testing.T) {
	cfg, dir := setup(t)
	input := writeInput(t, dir, "test.klc", testKLC)

	var out, logs bytes.Buffer
	a := New(cfg, strings.NewReader("acute\ngrave\n"), &out, &logs)

	diags, err := a.ConvertFile(input)
	require.NoError(t, err)
	assert.Equal(t, 1, diags.Count(diagnostic.CodeUnmappedKey))
	assert.Equal(t, 1, diags.Count(diagnostic.CodeSameAsBaseline))

	got, err := os.ReadFile(filepath.Join(dir, "test"))
	require.NoError(t, err)
	assert.Equal(t, wantOutput, string(got))

	assert.Equal(t, 2, strings.Count(out.String(), "Please enter x11 deadkey name"))
	assert.Contains(t, out.String(), `"ACUTE ACCENT"`)
	assert.Contains(t, out.String(), "It composes: a → á, e → é")

	assert.Contains(t, logs.String(), "skipped scan code without XKB key")
	assert.Contains(t, logs.String(), "scan_code=01")
	assert.Contains(t, logs.String(), "wrote layout")
	assert.Contains(t, logs.String(), "severity=info")
}

func TestConvertFileBlankAnswersKeepLiterals(t *testing.T) {
	cfg, dir := setup(t)
	input := writeInput(t, dir, "test.klc", testKLC)

	a := New(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	_, err := a.ConvertFile(input)
	require.NoError(t, err)

	layout := readOutput(t, filepath.Join(dir, "test"))
	assert.Equal(t,
		xkb.OutputFromLevels(xkb.Literal('´'), xkb.Literal('`')),
		layout.Default.Keys["AD11"])
}

func TestConvertFileUTF16(t *testing.T) {
	cfg, dir := setup(t)

	// UTF-16LE with byte order mark, the encoding layout editors save in.
	var b bytes.Buffer
	b.Write([]byte{0xff, 0xfe})
	for _, r := range testKLC {
		b.WriteByte(byte(r))
		b.WriteByte(byte(r >> 8))
	}

	input := writeInput(t, dir, "utf16.klc", b.String())

	a := New(cfg, strings.NewReader("acute\ngrave\n"), &bytes.Buffer{}, &bytes.Buffer{})
	_, err := a.ConvertFile(input)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "utf16"))
	require.NoError(t, err)
	assert.Equal(t, wantOutput, string(got))
}

func TestRunSharesAnswersAcrossFiles(t *testing.T) {
	cfg, dir := setup(t)
	first := writeInput(t, dir, "first.klc", testKLC)
	second := writeInput(t, dir, "second.klc", testKLC)

	var logs bytes.Buffer
	a := New(cfg, strings.NewReader("acute\ngrave\nacute\ngrave\n"), &bytes.Buffer{}, &logs)
	require.NoError(t, a.Run([]string{first, second}))

	assert.Contains(t, logs.String(), "msg=\"conversion finished\" files=2 unmapped=2 unchanged=2")

	for _, name := range []string{"first", "second"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, wantOutput, string(got), name)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	cfg, dir := setup(t)
	first := writeInput(t, dir, "first.klc", testKLC)
	broken := writeInput(t, dir, "broken.klc", "LAYOUT\n10 Q 1 q Q\n")
	last := writeInput(t, dir, "last.klc", testKLC)

	a := New(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	err := a.Run([]string{first, broken, last})

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, broken, fileErr.Path)

	assert.FileExists(t, filepath.Join(dir, "first"))
	assert.NoFileExists(t, filepath.Join(dir, "last"))
}

func TestRunMissingInput(t *testing.T) {
	cfg, dir := setup(t)

	a := New(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	err := a.Run([]string{filepath.Join(dir, "missing.klc")})

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunMissingBaseline(t *testing.T) {
	_, dir := setup(t)
	input := writeInput(t, dir, "test.klc", testKLC)

	cfg := DefaultConfig()
	cfg.SymbolsDir = filepath.Join(dir, "nowhere")

	a := New(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	err := a.Run([]string{input})

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorContains(t, err, "resolving baseline dk(basic)")
	assert.NoFileExists(t, filepath.Join(dir, "test"))
}

func TestWithLoader(t *testing.T) {
	_, dir := setup(t)
	input := writeInput(t, dir, "test.klc", testKLC)

	var loaded []string
	loader := resolve.LoaderFunc(func(path string) (*xkb.Layout, error) {
		loaded = append(loaded, path)
		if path != "dk" {
			return nil, errors.New("unexpected document")
		}

		return &xkb.Layout{Default: xkb.NewPartial("basic")}, nil
	})

	a := New(DefaultConfig(), strings.NewReader("acute\ngrave\n"), &bytes.Buffer{}, &bytes.Buffer{}, WithLoader(loader))
	require.NoError(t, a.Run([]string{input}))

	assert.Equal(t, []string{"dk"}, loaded)

	layout := readOutput(t, filepath.Join(dir, "test"))
	assert.Equal(t,
		[]xkb.KeyCode{"AD01", "AD03", "AD11", "AC01"},
		layout.Default.Keys.Keys())
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "cz.klc", want: "cz"},
		{in: "layouts/cz.klc", want: "layouts/cz"},
		{in: "layouts/cz.prog.klc", want: "layouts/cz.prog"},
		{in: "/tmp/a.txt", want: "/tmp/a"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := OutputPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputPathRejectsSelfOverwrite(t *testing.T) {
	for _, in := range []string{"cz", "layouts.d/cz", ".klc", "layouts/.klc"} {
		_, err := OutputPath(in)
		assert.ErrorIs(t, err, ErrNoExtension, in)
	}
}

func readOutput(t *testing.T, path string) *xkb.Layout {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	layout, err := xkb.ParseBytes(data)
	require.NoError(t, err)

	return layout
}
