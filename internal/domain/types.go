// Package domain defines the normalized domain types for support tickets.
// These types represent the core concepts independent of the board API structure.
package domain

import "fmt"

// Issues is the fixed catalog of screen issue categories, in the order
// they are presented to the user. "Other" is the terminal category and
// requires a free-text elaboration.
var Issues = []string{
	"Screen not turning on",
	"Wrong content",
	"Screen on but black screen",
	"Content not updated",
	"No signal",
	"Physical damage",
	IssueOther,
}

// IssueOther is the catch-all issue category. Selecting it makes the
// screen's Detail field mandatory.
const IssueOther = "Other"

// DefaultScreenTitle is substituted for a blank screen location when
// creating the subitem on the board.
const DefaultScreenTitle = "Unnamed Screen"

// ValidIssue reports whether s is a selectable catalog entry.
func ValidIssue(s string) bool {
	for _, opt := range Issues {
		if opt == s {
			return true
		}
	}
	return false
}

// Contact holds the reporter's contact details. All three fields are
// required for submission.
type Contact struct {
	Name        string
	PhoneDigits string // only [0-9+] characters, at least 7 digits
	Email       string
}

// Photo is a binary attachment bound to a screen report. Name is the
// original filename, used as the multipart filename on upload.
type Photo struct {
	Name string
	Data []byte
}

// ScreenReport describes one affected display. ID is a stable identifier
// assigned when the screen is added to the draft; validation errors are
// keyed by it so removing a screen cannot misattribute errors to its
// neighbors.
type ScreenReport struct {
	ID       int
	Location string
	Issue    string // one of Issues, empty until selected
	Detail   string // required when Issue == IssueOther
	Photo    *Photo
}

// Title returns the subitem title for the screen, substituting
// DefaultScreenTitle for a blank location.
func (s *ScreenReport) Title() string {
	if s.Location == "" {
		return DefaultScreenTitle
	}
	return s.Location
}

// TicketDraft is the in-progress form state. Screens is ordered and never
// empty; the order defines subitem creation order and the numbering shown
// to the user.
type TicketDraft struct {
	StoreCode string
	StoreName string
	Contact   Contact
	Screens   []*ScreenReport
}

// Clone returns a deep copy of the draft. The submitter works on a clone
// so an in-flight submission never observes later edits.
func (d *TicketDraft) Clone() *TicketDraft {
	out := &TicketDraft{
		StoreCode: d.StoreCode,
		StoreName: d.StoreName,
		Contact:   d.Contact,
	}
	out.Screens = make([]*ScreenReport, len(d.Screens))
	for i, s := range d.Screens {
		sc := *s
		out.Screens[i] = &sc
	}
	return out
}

// PhotoCount returns how many screens in the draft have a photo bound.
func (d *TicketDraft) PhotoCount() int {
	n := 0
	for _, s := range d.Screens {
		if s.Photo != nil {
			n++
		}
	}
	return n
}

// AttachmentOutcome records the result of one photo upload.
type AttachmentOutcome struct {
	SubitemID string
	Err       error
}

// SubmissionResult is the output of a completed pipeline run: the parent
// item identifier and, in draft order, the created subitem identifiers
// with their attachment outcomes. It is created fresh per submit attempt
// and never persisted.
type SubmissionResult struct {
	ItemID      string
	SubitemIDs  []string
	Attachments []AttachmentOutcome
}

// UploadFailures returns the attachment outcomes that failed.
func (r *SubmissionResult) UploadFailures() []AttachmentOutcome {
	var failed []AttachmentOutcome
	for _, a := range r.Attachments {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

// String implements fmt.Stringer for diagnostics.
func (r *SubmissionResult) String() string {
	return fmt.Sprintf("item %s, %d subitems", r.ItemID, len(r.SubitemIDs))
}
