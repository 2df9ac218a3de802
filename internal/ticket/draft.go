package ticket

import (
	"errors"

	"github.com/warrick/screendesk/internal/domain"
)

// ErrLastScreen indicates an attempt to remove the only remaining
// screen. A draft always has at least one screen.
var ErrLastScreen = errors.New("cannot remove the last screen")

// Store owns the mutable ticket draft and its validation errors. It is
// the single writer of both; the submitter borrows an immutable snapshot
// per attempt and never mutates it.
type Store struct {
	draft   *domain.TicketDraft
	errs    Errors
	prefill string // store-name pre-fill restored on Reset
	nextID  int    // next stable screen ID
}

// NewStore creates a store holding a fresh draft with a single empty
// screen. A non-empty prefill becomes the initial store name and is
// restored on every Reset.
func NewStore(prefill string) *Store {
	s := &Store{prefill: prefill}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.draft = &domain.TicketDraft{StoreName: s.prefill}
	s.errs = Errors{}
	s.addScreen()
}

func (s *Store) addScreen() *domain.ScreenReport {
	s.nextID++
	screen := &domain.ScreenReport{ID: s.nextID}
	s.draft.Screens = append(s.draft.Screens, screen)
	return screen
}

// Draft returns the live draft. Callers outside the store must treat it
// as read-only; use Snapshot for a submission attempt.
func (s *Store) Draft() *domain.TicketDraft {
	return s.draft
}

// Snapshot returns a deep copy of the draft for a submission attempt.
func (s *Store) Snapshot() *domain.TicketDraft {
	return s.draft.Clone()
}

// Errors returns the current validation error mapping.
func (s *Store) Errors() Errors {
	return s.errs
}

// Validate re-runs validation on the current draft and stores the result.
// Returns true when the draft is submit-eligible.
func (s *Store) Validate() bool {
	s.errs = Validate(s.draft)
	return len(s.errs) == 0
}

// AddScreen appends a new empty screen report and returns it.
func (s *Store) AddScreen() *domain.ScreenReport {
	return s.addScreen()
}

// RemoveScreen removes the screen with the given stable ID, discarding
// any validation errors keyed to it. Removing the last remaining screen
// is disallowed.
func (s *Store) RemoveScreen(screenID int) error {
	if len(s.draft.Screens) <= 1 {
		return ErrLastScreen
	}
	for i, screen := range s.draft.Screens {
		if screen.ID == screenID {
			s.draft.Screens = append(s.draft.Screens[:i], s.draft.Screens[i+1:]...)
			s.errs.DiscardScreen(screenID)
			return nil
		}
	}
	return errors.New("screen not found")
}

// Screen returns the screen with the given stable ID, or nil.
func (s *Store) Screen(screenID int) *domain.ScreenReport {
	for _, screen := range s.draft.Screens {
		if screen.ID == screenID {
			return screen
		}
	}
	return nil
}

// SetIssue selects a screen's issue category. Moving off the "Other"
// category clears the elaboration text so a stale explanation is never
// submitted with a catalog category.
func (s *Store) SetIssue(screenID int, issue string) {
	screen := s.Screen(screenID)
	if screen == nil {
		return
	}
	screen.Issue = issue
	if issue != domain.IssueOther {
		screen.Detail = ""
	}
}

// AttachPhoto binds a photo to a screen; a nil photo detaches.
func (s *Store) AttachPhoto(screenID int, photo *domain.Photo) {
	if screen := s.Screen(screenID); screen != nil {
		screen.Photo = photo
	}
}

// Reset discards the draft and errors and starts a fresh one with a
// single empty screen, keeping the store-name pre-fill.
func (s *Store) Reset() {
	s.reset()
}
