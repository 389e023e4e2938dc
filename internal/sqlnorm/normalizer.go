// Package sqlnorm corrects known naming drift between the schema the model
// was taught and the real database: legacy column names, the old tbl table
// prefix, and inconsistent casing on qualified names. It is a pure text
// rewrite; no SQL parsing, no I/O, and it never fails.
package sqlnorm

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern *regexp.Regexp
	replace string
}

// Order is significant: column renames must see the legacy names before the
// prefix rewrite touches them, and case normalization runs last over the
// dbo-qualified result.
var rules = []rule{
	// columns renamed since the model's training data was cut
	{regexp.MustCompile(`(?i)\bTransDate\b`), "TRN_DATE"},
	{regexp.MustCompile(`(?i)\bTransType\b`), "TRN_TYPE"},
	{regexp.MustCompile(`(?i)\bCustomerName\b`), "NAME"},
	{regexp.MustCompile(`(?i)\bQtyOnHand\b`), "ON_HAND"},
	// legacy tbl prefix convention -> real dbo schema
	{regexp.MustCompile(`\btbl([A-Za-z][A-Za-z0-9_]*)`), "dbo.$1"},
}

var reQualified = regexp.MustCompile(`(?i)\bdbo\.[A-Za-z][A-Za-z0-9_]*`)

// A single pass can expose text that an earlier rule then matches: the tbl
// rewrite plus uppercasing turns tblTransDate into dbo.TRANSDATE, and only
// the dot gives TRANSDATE the word boundary the rename rule needs. Each
// pass strictly shrinks the set of legacy names, so the fixed point arrives
// within a couple of iterations; the cap only guards against a bad rule.
const maxPasses = 8

// Normalize applies the rewrite rules in order and forces uppercase on
// dbo-qualified table names, repeating until the text stops changing so
// the result is a fixed point of every rule. Rewrites apply blindly inside
// string literals and comments too, matching the behavior the rest of the
// system was built against.
func Normalize(rawSQL string) string {
	out := rawSQL
	for i := 0; i < maxPasses; i++ {
		next := pass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func pass(sql string) string {
	for _, r := range rules {
		sql = r.pattern.ReplaceAllString(sql, r.replace)
	}
	return reQualified.ReplaceAllStringFunc(sql, func(m string) string {
		return "dbo." + strings.ToUpper(m[len("dbo."):])
	})
}
