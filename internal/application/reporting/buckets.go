package reporting

import (
	"fmt"
	"time"
)

// Claves de bucket temporal para las series de profit.

// dateKey formatea YYYY-MM-DD.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// isoWeekKey formatea "YYYY-Wnn" con el año ISO de numeración de semanas,
// que puede diferir del año calendario en los bordes de enero/diciembre.
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// monthKey formatea YYYY-MM.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// yearKey formatea YYYY.
func yearKey(t time.Time) string {
	return t.Format("2006")
}
