// Package notes encodes guest contact details into a booking's single
// free-text notes column and extracts them back. The booking table has
// no dedicated guest-contact columns, so visitor submissions fold
// name, email, phone and concern into one delimited string.
package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// Fields is the structured form of a notes blob.
type Fields struct {
	ServiceTitle string
	Name         string
	Email        string
	Phone        string
	Age          string
	Concern      string
}

var (
	nameRe    = regexp.MustCompile(`Name: ([^,]+)`)
	emailRe   = regexp.MustCompile(`Email: ([^,]+)`)
	phoneRe   = regexp.MustCompile(`Phone: ([^,]+)`)
	concernRe = regexp.MustCompile(`(?s)Concern: (.+)$`)
)

// Encode serializes the fields into the stored notes format. The
// format has no escaping: a comma inside name, email or phone will
// truncate that value on Decode. Concern goes last and may contain
// anything, including newlines.
func Encode(f Fields) string {
	return fmt.Sprintf("Service: %s, Name: %s, Email: %s, Phone: %s, Age: %s, Concern: %s",
		f.ServiceTitle, f.Name, f.Email, f.Phone, f.Age, f.Concern)
}

// Decode extracts contact fields from a notes blob. Every field
// defaults to empty when absent; Decode never fails, so malformed or
// partially written notes degrade to partial extraction. The parsing
// rule must stay exactly this (values end at the next literal comma,
// concern runs to end of string) so rows stored by older submissions
// remain readable.
func Decode(raw string) Fields {
	var f Fields
	if raw == "" {
		return f
	}
	if m := nameRe.FindStringSubmatch(raw); m != nil {
		f.Name = strings.TrimSpace(m[1])
	}
	if m := emailRe.FindStringSubmatch(raw); m != nil {
		f.Email = strings.TrimSpace(m[1])
	}
	if m := phoneRe.FindStringSubmatch(raw); m != nil {
		f.Phone = strings.TrimSpace(m[1])
	}
	if m := concernRe.FindStringSubmatch(raw); m != nil {
		f.Concern = strings.TrimSpace(m[1])
	}
	return f
}
