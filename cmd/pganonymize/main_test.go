package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithPipes(t *testing.T, input string, opts runOptions) string {
	t.Helper()

	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	outR, outW, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = inW.WriteString(input)
		_ = inW.Close()
	}()

	opts.stdin = inR
	opts.stdout = outW

	done := make(chan string, 1)
	go func() {
		out, _ := io.ReadAll(outR)
		done <- string(out)
	}()

	err = run(opts)
	require.NoError(t, err)
	require.NoError(t, outW.Close())

	return <-done
}

func TestRunPlainFormatPassthrough(t *testing.T) {
	input := "CREATE TABLE foo (id int);\n"
	out := runWithPipes(t, input, runOptions{locale: "en", delimiter: "\t"})
	assert.Equal(t, input, out)
}

func TestRunPlainFormatAppliesDirective(t *testing.T) {
	input := "COMMENT ON COLUMN public.users.email IS 'anon: [{\"mutation_name\":\"null\"}]';\n" +
		"COPY public.users (id, email) FROM stdin;\n" +
		"1\talice@example.com\n" +
		"\\.\n"

	out := runWithPipes(t, input, runOptions{locale: "en", delimiter: "\t"})
	assert.Contains(t, out, "1\t\\N\n")
	assert.NotContains(t, out, "alice@example.com")
}

func TestRunDeleteTablePatternDropsRows(t *testing.T) {
	input := "COPY public.sessions (id) FROM stdin;\n1\n2\n\\.\n"

	out := runWithPipes(t, input, runOptions{
		locale:              "en",
		delimiter:           "\t",
		deleteTablePatterns: []string{"^public\\.sessions$"},
	})
	assert.Equal(t, "", out)
}

func TestRunRejectsInvalidDeletePattern(t *testing.T) {
	err := run(runOptions{
		locale:              "en",
		delimiter:           "\t",
		deleteTablePatterns: []string{"("},
	})
	require.Error(t, err)
}
