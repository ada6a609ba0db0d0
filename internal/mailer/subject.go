// Package mailer ingests change-request tickets from an IMAP mailbox whose
// message subjects follow the pipe-delimited convention
// "Customer | Module | CRType | Issue Type | Description".
package mailer

import "strings"

// bodyMarker separates the parsed description from the raw message body in
// the created ticket.
const bodyMarker = "--- Original Email Body ---"

// ParsedSubject holds the fields extracted from a conforming subject line.
type ParsedSubject struct {
	Customer    string
	Module      string
	CRType      string
	IssueType   string
	Description string
}

// ParseSubject splits a subject on "|" and trims each segment. At least five
// segments are required; segments beyond the fifth are rejoined into the
// description with the literal separator. Returns false for malformed
// subjects.
func ParseSubject(subject string) (ParsedSubject, bool) {
	parts := strings.Split(subject, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 5 {
		return ParsedSubject{}, false
	}
	return ParsedSubject{
		Customer:    parts[0],
		Module:      parts[1],
		CRType:      parts[2],
		IssueType:   parts[3],
		Description: strings.Join(parts[4:], " | "),
	}, true
}

// ComposeDescription appends the raw message body to the parsed description
// under the fixed marker.
func ComposeDescription(parsed ParsedSubject, body string) string {
	return parsed.Description + "\n\n" + bodyMarker + "\n" + body
}
