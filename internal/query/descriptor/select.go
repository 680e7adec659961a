package descriptor

import "strings"

// Projection is the set of columns a SELECT asks for, or the single
// COUNT(*) aggregate.
type Projection struct {
	IsCount bool
	Columns []string
}

// Filter is the single `column = value` equality predicate this recognizer
// supports.
type Filter struct {
	Column string
	Value  string
}

// Select is the structured form of a recognized SELECT statement.
type Select struct {
	Table      string
	Projection Projection
	Filter     *Filter
}

// ParseSelect recognizes a narrow SELECT shape by a lowercased keyword
// scan: projections accumulate until "from"; any token containing "count"
// becomes the Count projection; the table name is the token after "from";
// an optional "where <column> = <value>" clause contributes one filter,
// whose value must be a single-quoted string literal (numeric literals and
// non-equality predicates are unsupported).
func ParseSelect(text string) (*Select, error) {
	tokens := tokenize(strings.TrimSpace(text))
	if len(tokens) == 0 || !strings.EqualFold(tokens[0], "select") {
		return nil, newErr(KindParseError, "not a select statement: %q", text)
	}

	i := 1
	var proj Projection
	for i < len(tokens) && !strings.EqualFold(tokens[i], "from") {
		tok := strings.TrimSuffix(tokens[i], ",")
		switch {
		case strings.Contains(strings.ToLower(tok), "count"):
			proj.IsCount = true
		case tok != "":
			proj.Columns = append(proj.Columns, tok)
		}
		i++
	}
	if i >= len(tokens) {
		return nil, newErr(KindParseError, "select missing from clause: %q", text)
	}
	i++ // skip "from"

	if i >= len(tokens) {
		return nil, newErr(KindParseError, "select missing table name: %q", text)
	}
	table := strings.TrimSuffix(tokens[i], ",")
	i++

	var filter *Filter
	if i < len(tokens) && strings.EqualFold(tokens[i], "where") {
		i++
		f, err := parseFilter(tokens[i:], text)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	return &Select{Table: table, Projection: proj, Filter: filter}, nil
}

func parseFilter(tokens []string, original string) (*Filter, error) {
	if len(tokens) < 3 {
		return nil, newErr(KindParseError, "malformed where clause: %q", original)
	}
	column := tokens[0]
	if tokens[1] != "=" {
		return nil, newErr(KindUnsupported, "only equality predicates are supported: %q", original)
	}
	literal := tokens[2]
	if !strings.HasPrefix(literal, "'") || !strings.HasSuffix(literal, "'") || len(literal) < 2 {
		return nil, newErr(KindUnsupported, "numeric where literals are not supported: %q", original)
	}
	value := literal[1 : len(literal)-1]
	return &Filter{Column: column, Value: value}, nil
}

// tokenize splits s on whitespace, but treats a single-quoted span
// (possibly containing embedded spaces) as one token, rejoined with a
// single space between its words.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	var tokens []string

	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "'") || (strings.HasSuffix(f, "'") && len(f) > 1) {
			tokens = append(tokens, f)
			continue
		}

		parts := []string{f}
		for i+1 < len(fields) {
			i++
			parts = append(parts, fields[i])
			if strings.HasSuffix(fields[i], "'") {
				break
			}
		}
		tokens = append(tokens, strings.Join(parts, " "))
	}

	return tokens
}
