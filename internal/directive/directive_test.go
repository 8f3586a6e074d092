package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommentColumn(t *testing.T) {
	r := New()
	line := `COMMENT ON COLUMN public.users.email IS 'anon: [{"mutation_name":"email","mutation_kwargs":{},"conditions":[],"relations":[]}]';`
	ok := r.ParseComment(line)
	require.True(t, ok)
	specs := r.Mutations["public.users"]["email"]
	require.Len(t, specs, 1)
	assert.Equal(t, "email", specs[0].MutationName)
}

func TestParseCommentTable(t *testing.T) {
	r := New()
	line := `COMMENT ON TABLE public.sessions IS 'anon: {"mutation_name":"delete"}';`
	ok := r.ParseComment(line)
	require.True(t, ok)
	assert.Equal(t, "delete", r.TableMutations["public.sessions"].MutationName)
}

func TestParseCommentSwallowsBadJSON(t *testing.T) {
	r := New()
	line := `COMMENT ON COLUMN public.users.email IS 'anon: not json';`
	ok := r.ParseComment(line)
	require.True(t, ok)
	assert.Empty(t, r.Mutations)
}

func TestParseCommentIgnoresUnrelatedLines(t *testing.T) {
	r := New()
	assert.False(t, r.ParseComment("CREATE TABLE public.users (id int);"))
}

func TestParseCopy(t *testing.T) {
	table, cols, ok := ParseCopy("COPY public.users (id, email, created_at) FROM stdin;")
	require.True(t, ok)
	assert.Equal(t, "public.users", table)
	assert.Equal(t, []string{"id", "email", "created_at"}, cols)
}

func TestParseCopyNoMatch(t *testing.T) {
	_, _, ok := ParseCopy("SELECT 1;")
	assert.False(t, ok)
}
