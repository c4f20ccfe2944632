package license

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Text is a display value read from a host payload. Absent and null fields
// decode to the empty string. Booleans keep their JSON literal and numbers are
// printed the way a browser prints them, so 1e2 shows as 100.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '{' || data[0] == '[':
		// Objects and arrays have no sensible cell rendering.
		*t = ""
	case data[0] == 't' || data[0] == 'f':
		*t = Text(data)
	default:
		*t = Text(formatNumber(string(data)))
	}
	return nil
}

// formatNumber renders a JSON number in shortest form, using decimal notation
// for magnitudes in [1e-6, 1e21) and an exponent otherwise.
func formatNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}

func (t Text) String() string {
	return string(t)
}

// Record is one row of licensing metadata for a customer/server/product combination.
type Record struct {
	Customer    Text `json:"customer"`
	PermanentID Text `json:"permanentId"`
	Product     Text `json:"product"`
	Type        Text `json:"type"`
	Repository  Text `json:"repository"`
	Expiration  Text `json:"expiration"`
}

// Cells returns the record's values in column order.
func (r Record) Cells() []string {
	return []string{
		r.Customer.String(),
		r.PermanentID.String(),
		r.Product.String(),
		r.Type.String(),
		r.Repository.String(),
		r.Expiration.String(),
	}
}

// List is the body of the license list endpoint.
type List struct {
	Licenses []Record `json:"licenses"`
}

func (l *List) UnmarshalJSON(data []byte) error {
	var raw struct {
		Licenses *[]Record `json:"licenses"`
		// Older plugin versions used the British spelling.
		Licences *[]Record `json:"licences"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Licenses != nil:
		l.Licenses = *raw.Licenses
	case raw.Licences != nil:
		l.Licenses = *raw.Licences
	default:
		l.Licenses = nil
	}
	return nil
}

// Len returns the number of records.
func (l List) Len() int {
	return len(l.Licenses)
}

// Column is a fixed header column of the license table.
type Column struct {
	Title string
	Width int // pixels; 0 leaves the width unset
}

// Columns are the license table headers in display order.
var Columns = []Column{
	{Title: "Company name"},
	{Title: "Server ID", Width: 200},
	{Title: "Product", Width: 100},
	{Title: "Type", Width: 100},
	{Title: "Repository", Width: 130},
	{Title: "Expiration", Width: 200},
}
