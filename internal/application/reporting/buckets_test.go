package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 5, 0, time.UTC)
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-03-07", dateKey(date(2025, time.March, 7)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", monthKey(date(2025, time.March, 7)))
}

func TestYearKey(t *testing.T) {
	assert.Equal(t, "2025", yearKey(date(2025, time.March, 7)))
}

// Los bordes de año son el caso traicionero de la semana ISO: los últimos
// días de diciembre pueden caer en la W01 del año siguiente y los primeros
// de enero en la W52/W53 del anterior.
func TestISOWeekKey_BordesDeAnio(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2024, time.December, 30), "2025-W01"}, // lunes, ya es semana 1 de 2025
		{date(2025, time.January, 1), "2025-W01"},
		{date(2021, time.January, 1), "2020-W53"}, // viernes, aún semana 53 de 2020
		{date(2023, time.January, 1), "2022-W52"}, // domingo, aún semana 52 de 2022
		{date(2025, time.June, 15), "2025-W24"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isoWeekKey(tc.in), "fecha %s", tc.in.Format("2006-01-02"))
	}
}
