// Package jsonx holds JSON helpers shared by the domain packages.
package jsonx

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a JSON value read as a string. Strings are taken as is, numbers
// and booleans keep their literal form, and null, objects and arrays read
// as "". Decoding never fails on a well-formed value of another type.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	case 't', 'f':
		v, err := strconv.ParseBool(string(b))
		if err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(v))
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string { return string(t) }
