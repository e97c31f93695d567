package timeline

import (
	"fmt"
	"strings"
)

// EventTimestampExpr is the SQL twin of NormalizeBooking.
const EventTimestampExpr = "booking_event_ts(date, time)"

// SQLTimestampLayout formats range bounds as naive timestamp literals.
const SQLTimestampLayout = "2006-01-02 15:04:05.999999"

const sqlTrim = `E' \t\r\n'`

// Fragment is a WHERE clause body plus its positional arguments. An empty SQL
// means "no filter".
type Fragment struct {
	SQL  string
	Args []any
}

// Where returns " WHERE <sql>" or "" for the universal predicate.
func (f Fragment) Where() string {
	if f.SQL == "" {
		return ""
	}
	return " WHERE " + f.SQL
}

type fragmentWriter struct {
	parts []string
	args  []any
	next  int
}

func (w *fragmentWriter) add(sql string, args ...any) {
	for range args {
		sql = strings.Replace(sql, "?", fmt.Sprintf("$%d", w.next), 1)
		w.next++
	}
	w.parts = append(w.parts, "("+sql+")")
	w.args = append(w.args, args...)
}

// Fragment renders p for Postgres with placeholders numbered from firstArg.
// A range condition binds start then end.
func (p Predicate) Fragment(firstArg int) Fragment {
	if firstArg < 1 {
		firstArg = 1
	}
	w := &fragmentWriter{next: firstArg}
	for _, c := range p.conditions {
		c.render(w)
	}
	return Fragment{SQL: strings.Join(w.parts, " AND "), Args: w.args}
}

func normalized(column string) string {
	return fmt.Sprintf("lower(btrim(coalesce(%s, ''), %s))", column, sqlTrim)
}

func clearList() string {
	quoted := make([]string, len(clearValues))
	for i, v := range clearValues {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func (c SuccessCondition) render(w *fragmentWriter) {
	status := fmt.Sprintf("%s = '%s'", normalized("booking_status"), SuccessMarker)
	if c.Policy != StatusOrCleanRide {
		w.add(status)
		return
	}
	in := clearList()
	w.add(fmt.Sprintf("%s OR (%s IN (%s) AND %s IN (%s) AND %s IN (%s))",
		status,
		normalized("canceled_rides_by_customer"), in,
		normalized("canceled_rides_by_driver"), in,
		normalized("incomplete_rides"), in,
	))
}

func (c RangeCondition) render(w *fragmentWriter) {
	w.add(EventTimestampExpr+" BETWEEN ? AND ?",
		c.Range.Start.Format(SQLTimestampLayout),
		c.Range.End.Format(SQLTimestampLayout),
	)
}
