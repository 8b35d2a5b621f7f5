package calendar

import (
	"fmt"
	"time"
)

// GridCells is the fixed size of a month matrix: six weeks of seven days.
const GridCells = 42

// YearMonth identifies a displayed month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Shift moves n months forward (negative n moves back), rolling over year
// boundaries.
func (ym YearMonth) Shift(n int) YearMonth {
	return MonthOf(time.Date(ym.Year, ym.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// Prev returns the previous month.
func (ym YearMonth) Prev() YearMonth { return ym.Shift(-1) }

// Next returns the following month.
func (ym YearMonth) Next() YearMonth { return ym.Shift(1) }

// Title renders the month as e.g. "March 2024".
func (ym YearMonth) Title() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// DaysIn returns the number of days in the month, using day 0 of the next
// month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cell is one slot of the month matrix. Day is zero for padding cells.
type Cell struct {
	Year  int
	Month time.Month
	Day   int
}

// Blank reports whether c is padding outside the month.
func (c Cell) Blank() bool { return c.Day == 0 }

// Key returns the date key of c, or "" for padding.
func (c Cell) Key() string {
	if c.Blank() {
		return ""
	}
	return DateKeyOf(c.Year, c.Month, c.Day)
}

// Matrix is a month laid out Sunday-first over six weeks.
type Matrix [GridCells]Cell

// BuildMonth lays out ym so that day 1 lands in its weekday column
// (Sunday = 0), with blank cells before it and after the last day.
func BuildMonth(ym YearMonth) Matrix {
	ym = ym.Shift(0)
	var m Matrix
	first := int(time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	days := DaysIn(ym.Year, ym.Month)
	for d := 1; d <= days; d++ {
		m[first+d-1] = Cell{Year: ym.Year, Month: ym.Month, Day: d}
	}
	return m
}

// Days counts the non-blank cells of m.
func (m Matrix) Days() int {
	n := 0
	for _, c := range m {
		if !c.Blank() {
			n++
		}
	}
	return n
}
