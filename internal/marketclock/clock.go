// Package marketclock answers whether the NSE trading session is open.
package marketclock

import "time"

// IST is the exchange time zone, UTC+5:30. A fixed zone avoids depending on
// the host's tzdata.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Session boundaries in seconds since midnight IST, both inclusive.
const (
	sessionOpen  = (9*60 + 15) * 60
	sessionClose = (15*60 + 30) * 60
)

// IsOpen reports whether the NSE session (09:15-15:30 IST, Mon-Fri) is open
// at the given instant. Exchange holidays are not modelled.
func IsOpen(now time.Time) bool {
	local := now.In(IST)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	s := local.Hour()*3600 + local.Minute()*60 + local.Second()
	return s >= sessionOpen && s <= sessionClose
}
