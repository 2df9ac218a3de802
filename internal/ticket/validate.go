// Package ticket holds the ticket draft, its validation rules, and the
// submission pipeline that turns a draft into board records.
package ticket

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/warrick/screendesk/internal/domain"
)

// Field keys for draft-level fields. Per-screen keys are derived from
// the screen's stable ID, see ScreenKey.
const (
	FieldStoreName     = "storeName"
	FieldContactName   = "contactName"
	FieldContactNumber = "contactNumber"
	FieldContactEmail  = "contactEmail"

	FieldScreenName             = "screenName"
	FieldScreenDescription      = "screenDescription"
	FieldScreenOtherDescription = "screenOtherDescription"
)

// emailPattern is deliberately loose: something before @, something
// after, and a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// nonDigit matches everything SanitizePhone strips.
var nonDigit = regexp.MustCompile(`[^0-9]`)

// Errors maps field keys to user-facing error messages. An empty map
// means the draft is eligible for submission.
type Errors map[string]string

// ScreenKey builds the error key for one field of one screen. Keys are
// addressed by the screen's stable ID, not its position, so removing a
// screen cannot leave its errors attached to a neighbor.
func ScreenKey(field string, screenID int) string {
	return fmt.Sprintf("%s/%d", field, screenID)
}

// Screen returns the error message for one field of one screen.
func (e Errors) Screen(field string, screenID int) string {
	return e[ScreenKey(field, screenID)]
}

// DiscardScreen removes all error entries keyed to the given screen.
func (e Errors) DiscardScreen(screenID int) {
	delete(e, ScreenKey(FieldScreenName, screenID))
	delete(e, ScreenKey(FieldScreenDescription, screenID))
	delete(e, ScreenKey(FieldScreenOtherDescription, screenID))
}

// SanitizePhone strips everything but digits from a phone string.
// Sanitizing an already-sanitized string is a no-op.
func SanitizePhone(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks a draft against the submission rules and returns the
// field errors found. It has no side effects and is cheap enough to run
// on every edit; the submitter re-runs it as a gate before any board
// call is made.
func Validate(d *domain.TicketDraft) Errors {
	errs := Errors{}

	if strings.TrimSpace(d.StoreName) == "" {
		errs[FieldStoreName] = "Store name is required"
	}
	if strings.TrimSpace(d.Contact.Name) == "" {
		errs[FieldContactName] = "Your name is required"
	}
	switch {
	case strings.TrimSpace(d.Contact.PhoneDigits) == "":
		errs[FieldContactNumber] = "Contact number is required"
	case len(SanitizePhone(d.Contact.PhoneDigits)) < 7:
		errs[FieldContactNumber] = "Invalid phone number"
	}
	switch {
	case strings.TrimSpace(d.Contact.Email) == "":
		errs[FieldContactEmail] = "Email address is required"
	case !ValidEmail(d.Contact.Email):
		errs[FieldContactEmail] = "Invalid email address"
	}

	for _, s := range d.Screens {
		if strings.TrimSpace(s.Location) == "" {
			errs[ScreenKey(FieldScreenName, s.ID)] = "Screen location is required"
		}
		if !domain.ValidIssue(s.Issue) {
			errs[ScreenKey(FieldScreenDescription, s.ID)] = "Select an issue"
		} else if s.Issue == domain.IssueOther && strings.TrimSpace(s.Detail) == "" {
			errs[ScreenKey(FieldScreenOtherDescription, s.ID)] = "Please explain the issue"
		}
	}

	return errs
}
