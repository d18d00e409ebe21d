package custom

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"
)

// sqliteLayouts are the layouts the SQLite driver may hand back for a TIMESTAMP column stored as text.
var sqliteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Datetime represents a datetime.
type Datetime time.Time

// MarshalJSON implements the json.Marshaler interface.
func (d *Datetime) MarshalJSON() ([]byte, error) {
	if d == nil || time.Time(*d).IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`%q`, time.Time(*d).UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}

	// Remove " from text if present with regex (e.g. "2020-01-01T00:00:00Z" -> 2020-01-01T00:00:00Z)
	reg := regexp.MustCompile(`"(.*)"`)
	text = reg.ReplaceAll(text, []byte("$1"))

	t, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		return err
	}
	*d = Datetime(t)
	return nil
}

// Scan implements the sql.Scanner interface.
func (d *Datetime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = Datetime(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case int64:
		*d = Datetime(time.Unix(v, 0).UTC())
		return nil
	case nil:
		*d = Datetime(time.Time{})
		return nil
	default:
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, d)
	}
}

func (d *Datetime) parse(s string) error {
	for _, layout := range sqliteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Datetime(t)
			return nil
		}
	}
	return fmt.Errorf("invalid datetime: %s", s)
}

// Value implements the driver.Valuer interface. Times are always written in UTC.
func (d Datetime) Value() (driver.Value, error) {
	return time.Time(d).UTC(), nil
}

// Time returns the datetime as a time.Time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).Format(time.RFC3339)
}
