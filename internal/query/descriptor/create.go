package descriptor

import "strings"

// ParseCreateTable recognizes a CREATE TABLE statement just far enough to
// recover its ordered column-name list and, if one of the columns is
// declared INTEGER PRIMARY KEY, that column's name. The recognizer takes
// everything between the statement's first '(' and its last ')' as the
// column-definition body, splits it on every comma, and for each part
// takes the first whitespace-separated token as the column name; it does
// not otherwise understand table constraints or nested parentheses.
func ParseCreateTable(sql string) (columns []string, intPKColumn string, err error) {
	parts, err := parenthesizedParts(sql)
	if err != nil {
		return nil, "", err
	}

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		columns = append(columns, name)
		if strings.Contains(strings.ToLower(trimmed), "integer primary key") {
			intPKColumn = name
		}
	}

	if len(columns) == 0 {
		return nil, "", newErr(KindParseError, "create table %q declares no columns", sql)
	}
	return columns, intPKColumn, nil
}

// ParseCreateIndex recognizes a CREATE INDEX statement's indexed column.
// Multi-column indexes are out of scope; only the first column named in
// the parenthesized list is returned.
func ParseCreateIndex(sql string) (string, error) {
	parts, err := parenthesizedParts(sql)
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", newErr(KindParseError, "create index %q names no column", sql)
	}

	fields := strings.Fields(strings.TrimSpace(parts[0]))
	if len(fields) == 0 {
		return "", newErr(KindParseError, "create index %q names no column", sql)
	}
	return fields[0], nil
}

// parenthesizedParts returns the comma-split parts of the text between
// sql's first '(' and its last ')'.
func parenthesizedParts(sql string) ([]string, error) {
	open := strings.Index(sql, "(")
	if open < 0 {
		return nil, newErr(KindParseError, "no parenthesized body in %q", sql)
	}
	closeIdx := strings.LastIndex(sql, ")")
	if closeIdx < 0 || closeIdx <= open {
		return nil, newErr(KindParseError, "unbalanced parentheses in %q", sql)
	}
	return strings.Split(sql[open+1:closeIdx], ","), nil
}
