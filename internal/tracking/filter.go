// Where: internal/tracking/filter.go
// What: Structured filter expressions over variable rules.
// Why: Selection criteria are data, evaluated uniformly by every store backend.
package tracking

import "fmt"

// Operator is a field predicate kind.
type Operator string

const (
	// OpIs matches field equality. With a nil value it matches an unset
	// (nil) scope field.
	OpIs Operator = "is"
	// OpContains matches membership in a list field.
	OpContains Operator = "contains"
	// OpExcludes matches when the value is absent from a list field.
	OpExcludes Operator = "excludes"
)

// Field names understood by the filter evaluator.
const (
	FieldStatus          = "status"
	FieldProjects        = "projects"
	FieldUsers           = "users"
	FieldHostEngines     = "host_engines"
	FieldExcludeProjects = "exclude_projects"
	FieldExcludeUsers    = "exclude_users"
)

// Condition is a single field predicate.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Clause is one AND term of a filter: either a bare condition or a nested
// OR group of conditions.
type Clause struct {
	Cond Condition
	Any  []Condition
}

// Filter is the logical AND of its clauses.
type Filter []Clause

// Where appends a bare condition clause.
func (f Filter) Where(field string, op Operator, value any) Filter {
	return append(f, Clause{Cond: Condition{Field: field, Op: op, Value: value}})
}

// AnyOf appends an OR group clause.
func (f Filter) AnyOf(conditions ...Condition) Filter {
	return append(f, Clause{Any: conditions})
}

// Matches evaluates the filter against a rule. A malformed condition
// returns an error so bad records and bad filters stay distinguishable.
func (f Filter) Matches(rule VariableRule) (bool, error) {
	for _, clause := range f {
		if len(clause.Any) > 0 {
			matched := false
			for _, cond := range clause.Any {
				ok, err := evalCondition(cond, rule)
				if err != nil {
					return false, err
				}
				if ok {
					matched = true
					break
				}
			}
			if !matched {
				return false, nil
			}
			continue
		}

		ok, err := evalCondition(clause.Cond, rule)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalCondition(cond Condition, rule VariableRule) (bool, error) {
	switch cond.Field {
	case FieldStatus:
		return evalString(cond, rule.Status)
	case FieldProjects:
		return evalIntList(cond, rule.Projects)
	case FieldUsers:
		return evalIntList(cond, rule.Users)
	case FieldExcludeProjects:
		return evalIntList(cond, rule.ExcludeProjects)
	case FieldExcludeUsers:
		return evalIntList(cond, rule.ExcludeUsers)
	case FieldHostEngines:
		return evalStringList(cond, rule.HostEngines)
	}
	return false, fmt.Errorf("unknown filter field %q", cond.Field)
}

func evalString(cond Condition, value string) (bool, error) {
	if cond.Op != OpIs {
		return false, fmt.Errorf("operator %q not valid for field %q", cond.Op, cond.Field)
	}
	want, ok := cond.Value.(string)
	if !ok {
		return false, fmt.Errorf("field %q wants a string value", cond.Field)
	}
	return value == want, nil
}

func evalIntList(cond Condition, list []int) (bool, error) {
	if cond.Value == nil {
		if cond.Op != OpIs {
			return false, fmt.Errorf("nil value requires operator %q on field %q", OpIs, cond.Field)
		}
		return list == nil, nil
	}
	want, ok := cond.Value.(int)
	if !ok {
		return false, fmt.Errorf("field %q wants an int value", cond.Field)
	}
	found := false
	for _, v := range list {
		if v == want {
			found = true
			break
		}
	}
	switch cond.Op {
	case OpContains:
		return found, nil
	case OpExcludes:
		return !found, nil
	}
	return false, fmt.Errorf("operator %q not valid for field %q", cond.Op, cond.Field)
}

func evalStringList(cond Condition, list []string) (bool, error) {
	if cond.Value == nil {
		if cond.Op != OpIs {
			return false, fmt.Errorf("nil value requires operator %q on field %q", OpIs, cond.Field)
		}
		return list == nil, nil
	}
	want, ok := cond.Value.(string)
	if !ok {
		return false, fmt.Errorf("field %q wants a string value", cond.Field)
	}
	found := false
	for _, v := range list {
		if v == want {
			found = true
			break
		}
	}
	switch cond.Op {
	case OpContains:
		return found, nil
	case OpExcludes:
		return !found, nil
	}
	return false, fmt.Errorf("operator %q not valid for field %q", cond.Op, cond.Field)
}
