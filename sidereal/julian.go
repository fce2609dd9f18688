package sidereal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ErrPrecondition is returned for dates outside MinYear..MaxYear or for
// malformed calendar or clock fields.
var ErrPrecondition = errors.New("sidereal: precondition violated")

const (
	MinYear = 1900
	MaxYear = 2100
)

// Date is a Gregorian calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Validate checks the year range and that the day exists in the month.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrPrecondition, d.Year, MinYear, MaxYear)
	}
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d outside 1-12", ErrPrecondition, int(d.Month))
	}
	if days := daysIn(d.Year, d.Month); d.Day < 1 || d.Day > days {
		return fmt.Errorf("%w: day %d outside 1-%d for %04d-%02d", ErrPrecondition, d.Day, days, d.Year, int(d.Month))
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if julian.LeapYearGregorian(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// JulianDay0 returns the Julian day number at 0h UT of d:
//
//	J0 = 367y - INT(7(y + INT((m+9)/12))/4) + INT(275m/9) + d + 1721013.5
func JulianDay0(d Date) (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	y := float64(d.Year)
	m := float64(d.Month)
	return 367*y -
		math.Trunc(7*(y+math.Trunc((m+9)/12))/4) +
		math.Trunc(275*m/9) +
		float64(d.Day) +
		1_721_013.5, nil
}
