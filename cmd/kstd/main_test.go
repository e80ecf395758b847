package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kstd-project/go-kstd/core/content"
	"github.com/kstd-project/go-kstd/core/result"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestDigestCmd(t *testing.T) {
	out, err := run(t, "abc", "digest")
	require.NoError(t, err)
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d  -\n", out)

	dir := t.TempDir()
	p := writeFile(t, dir, "empty", "")
	out, err = run(t, "", "digest", p)
	require.NoError(t, err)
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709  "+p+"\n", out)

	_, err = run(t, "", "digest", filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestCidCmd(t *testing.T) {
	c, err := content.Identify([]byte("abc"))
	require.NoError(t, err)

	out, err := run(t, "abc", "cid")
	require.NoError(t, err)
	require.Equal(t, c.String()+"  -\n", out)

	out, err = run(t, "abc", "cid", "--base", "base58btc")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "z"))

	_, err = run(t, "abc", "cid", "--hash", "md5")
	require.ErrorContains(t, err, "unsupported hash")

	t.Setenv("KSTD_BASE", "nope")
	_, err = run(t, "abc", "cid")
	require.ErrorContains(t, err, "unknown multibase")
}

func TestPackVerify(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "apples")
	b := writeFile(t, dir, "b.txt", "oranges")
	archive := filepath.Join(dir, "out.car")

	out, err := run(t, "", "pack", "-o", archive, a, b)
	require.NoError(t, err)
	root := strings.TrimSpace(out)
	require.NotEmpty(t, root)

	out, err = run(t, "", "verify", archive)
	require.NoError(t, err)
	require.Contains(t, out, "root "+root+" (2 entries)")
	require.Contains(t, out, "a.txt")
	require.Contains(t, out, "b.txt")
	require.Contains(t, out, "ok 3 blocks")

	out, err = run(t, "", "verify", "--json", archive)
	require.NoError(t, err)
	require.Contains(t, out, `"name":"a.txt"`)

	t.Run("tampered archive", func(t *testing.T) {
		data, err := os.ReadFile(archive)
		require.NoError(t, err)
		i := bytes.Index(data, []byte("oranges"))
		require.Positive(t, i)
		data[i] = 'O'
		tampered := filepath.Join(dir, "tampered.car")
		require.NoError(t, os.WriteFile(tampered, data, 0o644))

		_, err = run(t, "", "verify", tampered)
		require.Error(t, err)
	})

	t.Run("output required", func(t *testing.T) {
		_, err := run(t, "", "pack", a)
		require.Error(t, err)
	})
}

func TestSelfTestCmd(t *testing.T) {
	out, err := run(t, "", "selftest")
	require.NoError(t, err)
	require.Equal(t, "digest: ok\nexcept: ok\n", out)
}

func TestSelfTestJSON(t *testing.T) {
	out, err := run(t, "", "selftest", "--json")
	require.NoError(t, err)
	require.Equal(t, "digest: {}\nexcept: {}\n", out)
}

func TestRunChecks(t *testing.T) {
	results, err := runChecks([]check{
		{"passes", func() error { return nil }},
		{"fails", func() error { return errors.New("vector mismatch") }},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, result.IsOk(results[0]))
	require.False(t, result.IsOk(results[1]))
	require.Equal(t, "vector mismatch", results[1].Error().Error())

	nd, err := results[1].Error().ToIPLD()
	require.NoError(t, err)
	msg, err := nd.LookupByString("message")
	require.NoError(t, err)
	s, err := msg.AsString()
	require.NoError(t, err)
	require.Equal(t, "vector mismatch", s)
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "selftest")
	require.ErrorContains(t, err, "invalid log level")
}
