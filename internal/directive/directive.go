// Package directive parses the SQL COMMENT annotations that carry
// anonymization directives, and the COPY statement that introduces a
// table's data block.
package directive

import (
	"encoding/json"
	"regexp"
	"strings"

	"pganonymize/internal/core"
)

var (
	commentColumnRe = regexp.MustCompile(`COMMENT ON COLUMN ([\w.]+) IS 'anon: ([\s\S]*)';`)
	commentTableRe  = regexp.MustCompile(`COMMENT ON TABLE ([\w.]*) IS 'anon: ([\s\S]*)';`)
	copyRe          = regexp.MustCompile(`COPY ([\w.]+) \(([\w\W]+)\) FROM stdin;`)
)

// Registry accumulates directives discovered across COMMENT statements,
// keyed by fully-qualified table name.
type Registry struct {
	Mutations      core.MutationMap
	TableMutations core.TableMutationMap
}

// New returns an empty directive registry.
func New() *Registry {
	return &Registry{
		Mutations:      core.MutationMap{},
		TableMutations: core.TableMutationMap{},
	}
}

// ParseComment inspects line for a `COMMENT ON COLUMN`/`COMMENT ON TABLE
// ... IS 'anon: ...';` statement and, if found, records its directive.
// Malformed directive JSON is swallowed (the comment is recognized but
// contributes no directive) rather than treated as fatal. Returns true
// if line was recognized as a directive comment.
func (r *Registry) ParseComment(line string) bool {
	if m := commentColumnRe.FindStringSubmatch(line); m != nil {
		fullName, jsonStr := m[1], m[2]
		tableName, columnName, ok := splitTableColumn(fullName)
		if !ok {
			return true
		}
		var specs []core.MutationSpec
		if err := json.Unmarshal([]byte(jsonStr), &specs); err == nil {
			if r.Mutations[tableName] == nil {
				r.Mutations[tableName] = map[string][]core.MutationSpec{}
			}
			r.Mutations[tableName][columnName] = specs
		}
		return true
	}

	if m := commentTableRe.FindStringSubmatch(line); m != nil {
		tableName, jsonStr := m[1], m[2]
		var spec core.TableMutationSpec
		if err := json.Unmarshal([]byte(jsonStr), &spec); err == nil {
			r.TableMutations[tableName] = spec
		}
		return true
	}

	return false
}

// ParseCopy inspects line for a `COPY table (col, col, ...) FROM
// stdin;` statement. Returns the table name, ordered column names, and
// whether line matched.
func ParseCopy(line string) (table string, columns []string, ok bool) {
	m := copyRe.FindStringSubmatch(line)
	if m == nil {
		return "", nil, false
	}
	table = m[1]
	parts := strings.Split(m[2], ", ")
	columns = make([]string, len(parts))
	for i, p := range parts {
		columns[i] = strings.TrimSpace(p)
	}
	return table, columns, true
}

// splitTableColumn splits "schema.table.column" into ("schema.table",
// "column") by splitting on the final '.'.
func splitTableColumn(fullName string) (table, column string, ok bool) {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return "", "", false
	}
	return fullName[:idx], fullName[idx+1:], true
}
