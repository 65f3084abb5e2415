package source

import (
	"strconv"
	"time"
)

// Value is a decoded cell value. The set of implementations is closed:
// Int, Float, String, Bool, DateTime, Error and Empty.
type Value interface {
	// String returns the display text of the value.
	String() string
	isValue()
}

// Int is an integral number.
type Int int64

// Float is a floating-point number.
type Float float64

// String is text.
type String string

// Bool is a boolean.
type Bool bool

// DateTime is a date or date-time value.
type DateTime struct {
	time.Time
}

// Error is a spreadsheet error literal such as "#DIV/0!".
type Error string

// Empty is a position with no value.
type Empty struct{}

func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Bool) isValue()     {}
func (DateTime) isValue() {}
func (Error) isValue()    {}
func (Empty) isValue()    {}

func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v String) String() string { return string(v) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Error) String() string  { return string(v) }
func (Empty) String() string    { return "" }

// String formats the value as ISO-8601, omitting the time when it is midnight.
func (v DateTime) String() string {
	h, m, s := v.Clock()
	if h == 0 && m == 0 && s == 0 && v.Nanosecond() == 0 {
		return v.Format("2006-01-02")
	}
	return v.Format("2006-01-02T15:04:05")
}

// NumberValue parses a raw numeric string into Int or Float. Non-numeric
// text is returned as String.
func NumberValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}
