package sqlite

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Timestamps are stored as TEXT in RFC3339 with nanoseconds, in UTC, so
// they sort lexically and survive either driver unchanged.
const timeLayout = time.RFC3339Nano

// textTime adapts a time.Time field to a TEXT column.
type textTime struct{ t *time.Time }

func (tt textTime) Value() (driver.Value, error) {
	return tt.t.UTC().Format(timeLayout), nil
}

func (tt textTime) Scan(src any) error {
	t, ok, err := parseTimeColumn(src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("scanning timestamp: unexpected NULL")
	}
	*tt.t = t
	return nil
}

// nullTime adapts an optional time field to a nullable TEXT column.
type nullTime struct{ t **time.Time }

func (nt nullTime) Value() (driver.Value, error) {
	if *nt.t == nil {
		return nil, nil
	}
	return (*nt.t).UTC().Format(timeLayout), nil
}

func (nt nullTime) Scan(src any) error {
	t, ok, err := parseTimeColumn(src)
	if err != nil {
		return err
	}
	if !ok {
		*nt.t = nil
		return nil
	}
	*nt.t = &t
	return nil
}

func parseTimeColumn(src any) (time.Time, bool, error) {
	var s string
	switch v := src.(type) {
	case nil:
		return time.Time{}, false, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		return v.UTC(), true, nil
	default:
		return time.Time{}, false, fmt.Errorf("scanning timestamp: unsupported type %T", src)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, true, nil
}

// now returns the current UTC time without its monotonic reading, so a
// record returned from Create compares equal to the one Get reads back.
func now() time.Time {
	return time.Now().UTC().Round(0)
}
