package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastWeekday(t *testing.T) {
	// 2025-06-14 is a Saturday, 2025-06-15 a Sunday.
	sat := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "20250613", LastWeekday(sat))
	assert.Equal(t, "20250613", LastWeekday(sun))
	assert.Equal(t, "20250616", LastWeekday(mon))
}

func TestDaysBack(t *testing.T) {
	assert.Equal(t, "20250606", DaysBack("20250616", 10))
	assert.Equal(t, "20240616", DaysBack("20250616", 365))
	assert.Equal(t, "bad", DaysBack("bad", 5))
}

func TestWeekdaysBack(t *testing.T) {
	// 2025-06-16 is a Monday; 5 weekdays back lands on the prior Monday.
	assert.Equal(t, "20250609", WeekdaysBack("20250616", 5))
	// 1 weekday back from Monday skips the weekend.
	assert.Equal(t, "20250613", WeekdaysBack("20250616", 1))
	assert.Equal(t, "bad", WeekdaysBack("bad", 5))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.23", FormatValue(1.2345, 2))
	assert.Equal(t, "1234.6", FormatValue(1234.56, 2))
	assert.Equal(t, "-1234.6", FormatValue(-1234.56, 2))
	assert.Equal(t, "NaN", FormatValue(math.NaN(), 2))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1234567.0, ParseNumber("1,234,567"))
	assert.Equal(t, -2.5, ParseNumber("-2.5"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("-"))
	assert.Equal(t, 0.0, ParseNumber("abc"))
}
