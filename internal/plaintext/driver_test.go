package plaintext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPassesThroughUnrelatedLines(t *testing.T) {
	input := "CREATE TABLE foo (id int);\n"
	var out bytes.Buffer
	err := Process(strings.NewReader(input), &out, nil, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, input, out.String())
}

func TestProcessMutatesCopyData(t *testing.T) {
	input := "COPY public.users (id, email) FROM stdin;\n1\talice@example.com\n\\.\n"
	var out bytes.Buffer
	err := Process(strings.NewReader(input), &out, nil, Hooks{
		SetupTable: func(line string) bool {
			return strings.HasPrefix(line, "COPY ")
		},
		IsDelete: func() bool { return false },
		Process: func(line []byte) ([]byte, bool) {
			return bytes.Replace(line, []byte("alice@example.com"), []byte("redacted@example.com"), 1), true
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "COPY public.users (id, email) FROM stdin;\n1\tredacted@example.com\n\\.\n", out.String())
}

func TestProcessOmitsDeletedTableData(t *testing.T) {
	input := "COPY public.sessions (id) FROM stdin;\n1\n2\n\\.\n"
	var out bytes.Buffer
	err := Process(strings.NewReader(input), &out, nil, Hooks{
		SetupTable: func(line string) bool { return strings.HasPrefix(line, "COPY ") },
		IsDelete:   func() bool { return true },
		Process:    func(line []byte) ([]byte, bool) { return line, true },
	})
	require.NoError(t, err)
	assert.Equal(t, "", out.String())
}

func TestProcessAccumulatesMultilineComment(t *testing.T) {
	input := "COMMENT ON COLUMN public.users.email IS 'anon: [\n  {\"mutation_name\":\"email\"}\n]';\n"
	var seen string
	var out bytes.Buffer
	err := Process(strings.NewReader(input), &out, nil, Hooks{
		ParseComment: func(line string) bool {
			seen = line
			return true
		},
	})
	require.NoError(t, err)
	assert.Contains(t, seen, `"mutation_name":"email"`)
	assert.Equal(t, input, out.String())
}

func TestProcessPrependsInitialBytes(t *testing.T) {
	initial := []byte("--")
	rest := strings.NewReader(" header comment\nSELECT 1;\n")
	var out bytes.Buffer
	err := Process(rest, &out, initial, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, "-- header comment\nSELECT 1;\n", out.String())
}
