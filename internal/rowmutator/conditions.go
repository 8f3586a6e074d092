package rowmutator

import (
	"regexp"

	"pganonymize/internal/core"
)

// checkConditions reports whether spec's conditions permit applying its
// mutation to this row: true if any condition matches, or the list is
// empty.
func checkConditions(conditions []core.Condition, values []string, columnIndex map[string]int) bool {
	if len(conditions) == 0 {
		return true
	}

	for _, cond := range conditions {
		idx, ok := columnIndex[cond.ColumnName]
		if !ok || idx >= len(values) {
			continue
		}
		colValue := values[idx]

		var matched bool
		switch cond.Operation {
		case core.OpEqual:
			matched = colValue == cond.Value
		case core.OpNotEqual:
			matched = colValue != cond.Value
		case core.OpByPattern:
			re, err := regexp.Compile(cond.Value)
			matched = err == nil && re.MatchString(colValue)
		}

		if matched {
			return true
		}
	}

	return false
}
