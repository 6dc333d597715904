package sqlagent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrEmptyQuery      = errors.New("empty query")
	ErrNotReadOnly     = errors.New("only SELECT queries are allowed")
	ErrMultiStatement  = errors.New("multiple statements are not allowed")
	ErrCommentedQuery  = errors.New("SQL comments are not allowed")
	ErrForbiddenClause = errors.New("query contains a forbidden keyword")
	ErrUnsafeLiteral   = errors.New("query contains an unterminated or escaped literal")
)

var forbiddenKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|copy|merge|call|vacuum|lock|into|set|reset|listen|notify|pg_sleep|pg_read_file|dblink)\b`)

var leadingKeyword = regexp.MustCompile(`(?i)^(select|with)\b`)

var dollarQuote = regexp.MustCompile(`\$\w*\$`)

// Validate checks that query is a single read-only SELECT and returns it
// without a trailing semicolon.
func Validate(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if q == "" {
		return "", ErrEmptyQuery
	}

	// Checks below run on the statement with literal contents blanked out, so
	// a value like 'Update Kit' or a column named "set" is not mistaken for SQL.
	bare, err := blankLiterals(q)
	if err != nil {
		return "", err
	}
	if dollarQuote.MatchString(bare) {
		return "", ErrUnsafeLiteral
	}
	if strings.Contains(bare, "--") || strings.Contains(bare, "/*") {
		return "", ErrCommentedQuery
	}
	if strings.Contains(bare, ";") {
		return "", ErrMultiStatement
	}
	if !leadingKeyword.MatchString(bare) {
		return "", ErrNotReadOnly
	}
	if kw := forbiddenKeyword.FindString(bare); kw != "" {
		return "", fmt.Errorf("%w: %s", ErrForbiddenClause, strings.ToUpper(kw))
	}
	return q, nil
}

// blankLiterals empties every '...' string and "..." identifier in q, keeping
// the quotes. A doubled quote inside a span is an escaped quote. Backslashes
// inside a span are rejected since E'' strings give them escape meaning.
func blankLiterals(q string) (string, error) {
	var b strings.Builder
	b.Grow(len(q))

	for i := 0; i < len(q); i++ {
		c := q[i]
		if c != '\'' && c != '"' {
			b.WriteByte(c)
			continue
		}

		end := -1
		for j := i + 1; j < len(q); j++ {
			if q[j] == '\\' {
				return "", ErrUnsafeLiteral
			}
			if q[j] != c {
				continue
			}
			if j+1 < len(q) && q[j+1] == c {
				j++
				continue
			}
			end = j
			break
		}
		if end < 0 {
			return "", ErrUnsafeLiteral
		}
		b.WriteByte(c)
		b.WriteByte(c)
		i = end
	}
	return b.String(), nil
}
