package postgresadapter

import "time"

// SystemClock is the runtime clock used with the SQL-backed stores.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
