package custombin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMinimalDump(t *testing.T, copyStmt string, commentDefn string) []byte {
	t.Helper()
	dio := New(4, 8)
	var buf bytes.Buffer
	buf.Write(buildModernHeader(t, 0))

	var toc bytes.Buffer
	tocCount := int32(1)
	if commentDefn != "" {
		tocCount = 2
	}
	require.NoError(t, dio.WriteInt(&toc, tocCount))

	writeTocEntry(t, &toc, dio, TocEntry{
		DumpID:    1,
		Desc:      "TABLE DATA",
		Section:   SectionData,
		CopyStmt:  copyStmt,
		Namespace: "public",
		Owner:     "postgres",
		DataState: 1,
	}, true)

	if commentDefn != "" {
		writeTocEntry(t, &toc, dio, TocEntry{
			DumpID: 2,
			Desc:   "COMMENT",
			Defn:   commentDefn,
		}, true)
	}

	buf.Write(toc.Bytes())

	buf.WriteByte(blockTypeData)
	require.NoError(t, dio.WriteInt(&buf, 1))
	require.NoError(t, dio.WriteInt(&buf, int32(len("1\talice\n"))))
	buf.WriteString("1\talice\n")
	require.NoError(t, dio.WriteInt(&buf, 0))

	buf.WriteByte(blockTypeEnd)

	return buf.Bytes()
}

func TestProcessDrivesPassthroughWhenNoWork(t *testing.T) {
	data := buildMinimalDump(t, "COPY public.users (id, name) FROM stdin;", "")

	var out bytes.Buffer
	err := Process(bytes.NewReader(data), &out, nil, Hooks{
		HasWork: func() bool { return false },
		Process: func(line []byte) ([]byte, bool) { return line, true },
	})
	require.NoError(t, err)
	assert.Equal(t, data, out.Bytes())
}

func TestProcessAppliesMutationWhenWorkPresent(t *testing.T) {
	data := buildMinimalDump(t, "COPY public.users (id, name) FROM stdin;", "")

	var setupCopyStmt string
	var reset bool
	var out bytes.Buffer
	err := Process(bytes.NewReader(data), &out, nil, Hooks{
		SetupTable: func(copyStmt string) { setupCopyStmt = copyStmt },
		HasWork:    func() bool { return true },
		Process: func(line []byte) ([]byte, bool) {
			return bytes.ToUpper(line), true
		},
		ResetTable: func() { reset = true },
	})
	require.NoError(t, err)
	assert.Equal(t, "COPY public.users (id, name) FROM stdin;", setupCopyStmt)
	assert.True(t, reset)
	assert.Contains(t, out.String(), "1\tALICE\n")
	assert.NotContains(t, out.String(), "1\talice\n")
}

func TestProcessExtractsCommentsIntoHook(t *testing.T) {
	data := buildMinimalDump(t, "COPY public.users (id, name) FROM stdin;", `[{"mutation_name":"fixed_value"}]`)

	var gotDefn string
	var out bytes.Buffer
	err := Process(bytes.NewReader(data), &out, nil, Hooks{
		ExtractComment: func(defn string) { gotDefn = defn },
		HasWork:        func() bool { return false },
		Process:        func(line []byte) ([]byte, bool) { return line, true },
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"mutation_name":"fixed_value"}]`, gotDefn)
}
