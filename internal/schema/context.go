// Package schema holds the static description of the remote database that
// the planner prompt is built from: tables, columns, keys, join paths, and
// the code-to-label dictionaries for categorical columns. Pure data, loaded
// once at startup and shared read-only.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Table describes one table in the remote schema.
type Table struct {
	Description string            `json:"description"`
	Fields      []string          `json:"fields"`
	PrimaryKey  string            `json:"primary_key"`
	Joins       map[string]string `json:"joins,omitempty"` // related table -> join predicate
}

// Context is the full schema description. Immutable after Default().
type Context struct {
	Tables     map[string]Table             `json:"tables"`
	CodeLabels map[string]map[string]string `json:"code_labels"` // column -> code -> label
}

// Default returns the built-in description of the target ERP database. The
// real schema lives under the dbo prefix with uppercase table names; the
// planner is instructed to use these names, and sqlnorm corrects drift.
func Default() *Context {
	return &Context{
		Tables: map[string]Table{
			"dbo.AUDIT": {
				Description: "Transaction ledger. One row per posted document line: invoices, credit notes, stock adjustments, goods received and journals.",
				Fields:      []string{"DOC_NO", "TRN_DATE", "TRN_TYPE", "ACCOUNT", "ITEM_CODE", "QTY", "AMOUNT"},
				PrimaryKey:  "DOC_NO",
				Joins: map[string]string{
					"dbo.CUSTOMER": "dbo.AUDIT.ACCOUNT = dbo.CUSTOMER.ACCOUNT",
					"dbo.STOCK":    "dbo.AUDIT.ITEM_CODE = dbo.STOCK.ITEM_CODE",
				},
			},
			"dbo.CUSTOMER": {
				Description: "Customer master. ACCOUNT is the ledger account code referenced by dbo.AUDIT.",
				Fields:      []string{"ACCOUNT", "NAME", "REGION", "CREATED"},
				PrimaryKey:  "ACCOUNT",
			},
			"dbo.STOCK": {
				Description: "Stock master with on-hand quantities and reorder levels.",
				Fields:      []string{"ITEM_CODE", "DESCRIPTION", "ON_HAND", "REORDER_LEVEL", "UNIT_PRICE"},
				PrimaryKey:  "ITEM_CODE",
			},
		},
		CodeLabels: map[string]map[string]string{
			"TRN_TYPE": {
				"INV": "Invoice",
				"CRN": "Credit Note",
				"ADJ": "Stock Adjustment",
				"GRV": "Goods Received",
				"JNL": "Journal",
			},
		},
	}
}

// Label resolves a categorical code to its human-readable label, falling
// back to the raw code when no dictionary entry exists.
func (c *Context) Label(column, code string) string {
	if m, ok := c.CodeLabels[column]; ok {
		if label, ok := m[code]; ok {
			return label
		}
	}
	return code
}

// Serialize renders the schema as prompt context. Output is deterministic
// (sorted table and column order) so prompts are stable across runs.
func (c *Context) Serialize() string {
	var sb strings.Builder

	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Tables[name]
		sb.WriteString(fmt.Sprintf("### %s\n%s\n", name, t.Description))
		sb.WriteString("Columns: " + strings.Join(t.Fields, ", ") + "\n")
		sb.WriteString("Primary key: " + t.PrimaryKey + "\n")
		if len(t.Joins) > 0 {
			related := make([]string, 0, len(t.Joins))
			for r := range t.Joins {
				related = append(related, r)
			}
			sort.Strings(related)
			for _, r := range related {
				sb.WriteString("Join " + r + ": " + t.Joins[r] + "\n")
			}
		}
		sb.WriteString("\n")
	}

	cols := make([]string, 0, len(c.CodeLabels))
	for col := range c.CodeLabels {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		sb.WriteString("### Codes for " + col + "\n")
		codes := make([]string, 0, len(c.CodeLabels[col]))
		for code := range c.CodeLabels[col] {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			sb.WriteString(fmt.Sprintf("  %s = %s\n", code, c.CodeLabels[col][code]))
		}
	}

	return sb.String()
}
