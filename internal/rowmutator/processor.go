// Package rowmutator applies directive-driven mutations to COPY data
// lines, tracking per-table column state, uniqueness, and cross-table
// foreign key consistency.
package rowmutator

import (
	"bytes"
	"math/rand"
	"regexp"
	"unicode/utf8"

	"pganonymize/internal/core"
	"pganonymize/internal/directive"
	"pganonymize/internal/fakedata"
	"pganonymize/internal/mutation"
	"pganonymize/internal/relation"
	"pganonymize/internal/unique"
)

// Processor is the per-run mutation engine: it owns the directive
// registry, shared RNG/trackers, and the state of whichever table's
// COPY block is currently being streamed.
type Processor struct {
	Mutations      core.MutationMap
	TableMutations core.TableMutationMap
	Locale         core.Locale
	Delimiter      byte
	DeletePatterns []*regexp.Regexp
	Fake           fakedata.Provider

	currentTable      string
	currentColumns    []string
	columnIndex       map[string]int
	currentMutations  map[string][]core.MutationSpec
	isDeleteTable     bool
	sortedColumns     []string

	rng             *rand.Rand
	uniqueTracker   *unique.Tracker
	relationTracker *relation.Tracker
	secrets         map[string]string
}

// New builds a Processor from a parsed directive registry and the
// process's environment secrets.
func New(reg *directive.Registry, locale core.Locale, delimiter byte, deletePatterns []*regexp.Regexp, secrets map[string]string, rng *rand.Rand) *Processor {
	return &Processor{
		Mutations:      reg.Mutations,
		TableMutations: reg.TableMutations,
		Locale:         locale,
		Delimiter:      delimiter,
		DeletePatterns: deletePatterns,
		Fake:           fakedata.Default(),

		columnIndex:      map[string]int{},
		currentMutations: map[string][]core.MutationSpec{},

		rng:             rng,
		uniqueTracker:   unique.New(),
		relationTracker: relation.New(),
		secrets:         secrets,
	}
}

// SetupTable recognizes a COPY statement and, if line is one, resets
// processor state for the table it introduces.
func (p *Processor) SetupTable(line string) bool {
	table, columns, ok := directive.ParseCopy(line)
	if !ok {
		return false
	}

	p.currentColumns = columns
	p.columnIndex = make(map[string]int, len(columns))
	for i, col := range columns {
		p.columnIndex[col] = i
	}

	p.isDeleteTable = p.shouldDeleteTable(table)
	p.currentMutations = p.Mutations[table]
	if p.currentMutations == nil {
		p.currentMutations = map[string][]core.MutationSpec{}
	}
	p.sortedColumns = p.sortColumnsByDependency()

	p.currentTable = table
	p.uniqueTracker.Clear()
	return true
}

// ProcessLine mutates a single delimiter-separated COPY data line.
// keep is false if the row's table is marked for deletion; otherwise
// out is the (possibly rewritten) line.
func (p *Processor) ProcessLine(line []byte) (out []byte, keep bool) {
	if p.isDeleteTable {
		return nil, false
	}

	if len(p.currentMutations) == 0 {
		return line, true
	}

	if !utf8.Valid(line) {
		return line, true
	}

	values := bytes.Split(line, []byte{p.Delimiter})
	if len(values) != len(p.currentColumns) {
		return line, true
	}

	resultValues := make([]string, len(values))
	for i, v := range values {
		resultValues[i] = string(v)
	}
	obfuscated := map[string]string{}

	for _, colName := range p.sortedColumns {
		specs, ok := p.currentMutations[colName]
		if !ok {
			continue
		}
		colIdx, ok := p.columnIndex[colName]
		if !ok {
			continue
		}

		currentValue := resultValues[colIdx]

		for _, spec := range specs {
			if !checkConditions(spec.Conditions, resultValues, p.columnIndex) {
				continue
			}

			if len(spec.Relations) > 0 {
				if newVal, ok := p.tryRelationLookup(spec, resultValues); ok {
					resultValues[colIdx] = newVal
					obfuscated[colName] = newVal
					break
				}
			}

			ctx := &mutation.Context{
				Kwargs:        spec.MutationKwargs,
				CurrentValue:  currentValue,
				Rng:           p.rng,
				UniqueTracker: p.uniqueTracker,
				Locale:        p.Locale,
				Secrets:       p.secrets,
				Fake:          p.Fake,
				Obfuscated:    obfuscated,
			}

			newVal, err := mutation.Dispatch(spec.MutationName, ctx)
			if err != nil {
				continue
			}

			if len(spec.Relations) > 0 {
				p.storeRelation(spec, resultValues, newVal)
			}
			resultValues[colIdx] = newVal
			obfuscated[colName] = newVal
			break
		}
	}

	out = []byte(joinStrings(resultValues, p.Delimiter))
	return out, true
}

// ResetTable clears per-table state (called when a COPY block ends).
func (p *Processor) ResetTable() {
	p.currentTable = ""
	p.currentColumns = nil
	p.currentMutations = map[string][]core.MutationSpec{}
	p.isDeleteTable = false
}

// HasMutations reports whether the current table has any column
// directives configured.
func (p *Processor) HasMutations() bool {
	return len(p.currentMutations) > 0
}

// IsDelete reports whether the current table is marked for deletion.
func (p *Processor) IsDelete() bool {
	return p.isDeleteTable
}

func (p *Processor) shouldDeleteTable(table string) bool {
	if spec, ok := p.TableMutations[table]; ok && spec.MutationName == "delete" {
		return true
	}
	for _, pattern := range p.DeletePatterns {
		if pattern.MatchString(table) {
			return true
		}
	}
	return false
}

// sortColumnsByDependency partitions columns into those independent of
// any other column and those whose directives reference a
// source_column kwarg, processing the former first.
func (p *Processor) sortColumnsByDependency() []string {
	independent := make([]string, 0, len(p.currentColumns))
	dependent := make([]string, 0)

	for _, col := range p.currentColumns {
		specs, ok := p.currentMutations[col]
		if !ok {
			independent = append(independent, col)
			continue
		}
		hasSource := false
		for _, s := range specs {
			if _, ok := s.MutationKwargs["source_column"]; ok {
				hasSource = true
				break
			}
		}
		if hasSource {
			dependent = append(dependent, col)
		} else {
			independent = append(independent, col)
		}
	}

	return append(independent, dependent...)
}

func (p *Processor) tryRelationLookup(spec core.MutationSpec, values []string) (string, bool) {
	for _, rel := range spec.Relations {
		idx, ok := p.columnIndex[rel.FromColumnName]
		if !ok {
			continue
		}
		fkValue := values[idx]
		if existing, ok := p.relationTracker.Lookup(rel.TableName, rel.ToColumnName, fkValue); ok {
			return existing, true
		}
	}
	return "", false
}

func (p *Processor) storeRelation(spec core.MutationSpec, values []string, newVal string) {
	for _, rel := range spec.Relations {
		idx, ok := p.columnIndex[rel.FromColumnName]
		if !ok {
			continue
		}
		fkValue := values[idx]
		p.relationTracker.Store(rel.TableName, rel.ToColumnName, fkValue, newVal)
	}
}

func joinStrings(values []string, delimiter byte) string {
	if len(values) == 0 {
		return ""
	}
	var b bytes.Buffer
	for i, v := range values {
		if i > 0 {
			b.WriteByte(delimiter)
		}
		b.WriteString(v)
	}
	return b.String()
}
