package dashboard

import (
	"fmt"
	"time"
)

// The fixed analytical queries are written against the legacy tbl naming
// convention and go through sqlnorm on execution, exactly like
// planner-generated SQL. Every window is anchored on the single reference
// date passed in, never on the wall clock.

const dateLayout = "2006-01-02"

const maxDateSQL = `SELECT MAX(TRN_DATE) AS MAX_DATE FROM tblAudit`

// yoySQL: daily invoice revenue for the trailing 30 days against the same
// window one year earlier. The day key drops the year so both windows align
// on one axis.
func yoySQL(ref time.Time) string {
	cur0 := ref.AddDate(0, 0, -30).Format(dateLayout)
	cur1 := ref.Format(dateLayout)
	prev0 := ref.AddDate(-1, 0, -30).Format(dateLayout)
	prev1 := ref.AddDate(-1, 0, 0).Format(dateLayout)
	return fmt.Sprintf(`SELECT CONVERT(varchar(5), TRN_DATE, 110) AS DAY,
  SUM(CASE WHEN TRN_DATE > '%s' AND TRN_DATE <= '%s' THEN AMOUNT ELSE 0 END) AS CURRENT_YEAR,
  SUM(CASE WHEN TRN_DATE > '%s' AND TRN_DATE <= '%s' THEN AMOUNT ELSE 0 END) AS LAST_YEAR
FROM tblAudit
WHERE TRN_TYPE = 'INV'
  AND ((TRN_DATE > '%s' AND TRN_DATE <= '%s') OR (TRN_DATE > '%s' AND TRN_DATE <= '%s'))
GROUP BY CONVERT(varchar(5), TRN_DATE, 110)
ORDER BY DAY`, cur0, cur1, prev0, prev1, cur0, cur1, prev0, prev1)
}

// topBuyersSQL: revenue per (customer, year) for the strongest buyers of
// the last two years, with each customer's overall total repeated per row.
func topBuyersSQL(ref time.Time) string {
	since := ref.AddDate(-2, 0, 0).Format(dateLayout)
	return fmt.Sprintf(`SELECT TOP 10
  c.NAME AS CUSTOMER,
  YEAR(a.TRN_DATE) AS YR,
  SUM(a.AMOUNT) AS REVENUE,
  SUM(SUM(a.AMOUNT)) OVER (PARTITION BY c.NAME) AS CUSTOMER_TOTAL
FROM tblAudit a
JOIN tblCustomer c ON a.ACCOUNT = c.ACCOUNT
WHERE a.TRN_TYPE = 'INV' AND a.TRN_DATE > '%s'
GROUP BY c.NAME, YEAR(a.TRN_DATE)
ORDER BY CUSTOMER_TOTAL DESC, YR`, since)
}

// compositionSQL: transaction-type mix over the trailing 30 days.
func compositionSQL(ref time.Time) string {
	since := ref.AddDate(0, 0, -30).Format(dateLayout)
	until := ref.Format(dateLayout)
	return fmt.Sprintf(`SELECT TRN_TYPE, COUNT(*) AS CNT
FROM tblAudit
WHERE TRN_DATE > '%s' AND TRN_DATE <= '%s'
GROUP BY TRN_TYPE`, since, until)
}

// kpiSQL: one row of aggregates. CURRENT covers the trailing 30 days,
// PREVIOUS the 30 days before that; LOW_STOCK comes off the stock master.
func kpiSQL(ref time.Time) string {
	cur0 := ref.AddDate(0, 0, -30).Format(dateLayout)
	cur1 := ref.Format(dateLayout)
	prev0 := ref.AddDate(0, 0, -60).Format(dateLayout)
	return fmt.Sprintf(`SELECT
  (SELECT COALESCE(SUM(AMOUNT), 0) FROM tblAudit WHERE TRN_TYPE = 'INV' AND TRN_DATE > '%[1]s' AND TRN_DATE <= '%[2]s') AS CURRENT_REVENUE,
  (SELECT COALESCE(SUM(AMOUNT), 0) FROM tblAudit WHERE TRN_TYPE = 'INV' AND TRN_DATE > '%[3]s' AND TRN_DATE <= '%[1]s') AS PREVIOUS_REVENUE,
  (SELECT COUNT(DISTINCT ACCOUNT) FROM tblAudit WHERE TRN_TYPE = 'INV' AND TRN_DATE > '%[1]s' AND TRN_DATE <= '%[2]s') AS ACTIVE_CUSTOMERS,
  (SELECT COUNT(DISTINCT DOC_NO) FROM tblAudit WHERE TRN_TYPE = 'INV' AND TRN_DATE > '%[1]s' AND TRN_DATE <= '%[2]s') AS INVOICE_COUNT,
  (SELECT COUNT(*) FROM tblStock WHERE ON_HAND < REORDER_LEVEL) AS LOW_STOCK`,
		cur0, cur1, prev0)
}
