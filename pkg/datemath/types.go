package datemath

import "time"

// Match is a relative date expression found inside free text.
type Match struct {
	Text string    // the matched expression as written
	Time time.Time // start of the resolved day in the parser's timezone
}
