package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindow_SemiabiertoYEnUTC(t *testing.T) {
	start, end := monthWindow(2025, time.June)

	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.UTC, start.Location(), "misma zona que el rango del gráfico mensual")
	assert.Equal(t, time.UTC, end.Location())
}

func TestMonthWindow_DiciembreCruzaDeAnio(t *testing.T) {
	start, end := monthWindow(2024, time.December)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}
