package model

import "time"

const dateLayout = "2006-01-02"

// Date is a UTC calendar day in YYYY-MM-DD form
type Date string

// DateOf returns the UTC calendar day containing t
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(dateLayout))
}

// Time returns midnight UTC at the start of the day
func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// DatePtr returns a pointer to d
func DatePtr(d Date) *Date {
	return &d
}
