package ticket

import "fmt"

// Phase is the submission lifecycle state. The draft itself lives in the
// Store; the Machine only tracks where the current attempt is, so
// contradictory flag combinations ("uploading" while not submitted)
// cannot be represented.
type Phase int

const (
	// Editing: the form accepts edits; no attempt is in flight.
	Editing Phase = iota
	// Submitting: records are being created; the form is locked.
	Submitting
	// SubmittedUploading: records exist and success has been reported,
	// but photo uploads are still settling. The form stays locked.
	SubmittedUploading
	// Submitted: the attempt is fully complete.
	Submitted
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case SubmittedUploading:
		return "submitted (uploads pending)"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Machine drives the submission state transitions. A failure at any
// in-flight point returns to Editing with the draft preserved; there is
// no terminal failure state the user could get stuck in.
type Machine struct {
	phase Phase
}

// NewMachine returns a machine in the Editing phase.
func NewMachine() *Machine {
	return &Machine{phase: Editing}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Locked reports whether form controls are disabled: true while records
// are being created or uploads are pending, which also prevents a
// concurrent double submission.
func (m *Machine) Locked() bool {
	return m.phase == Submitting || m.phase == SubmittedUploading
}

// Submit starts an attempt. Only legal from Editing with a valid draft;
// an invalid draft stays in Editing and the caller surfaces the
// aggregate notice.
func (m *Machine) Submit(valid bool) error {
	if m.phase != Editing {
		return fmt.Errorf("cannot submit while %s", m.phase)
	}
	if !valid {
		return nil
	}
	m.phase = Submitting
	return nil
}

// RecordsCreated marks the parent and all subitems as created. Success
// is reported to the user at this point. With no photos pending the
// attempt is already complete.
func (m *Machine) RecordsCreated(photosPending bool) error {
	if m.phase != Submitting {
		return fmt.Errorf("records created while %s", m.phase)
	}
	if photosPending {
		m.phase = SubmittedUploading
	} else {
		m.phase = Submitted
	}
	return nil
}

// UploadsSettled marks the parallel upload phase as finished. Any upload
// failure counts as a submission failure and returns to Editing, even
// though the records persist on the board.
func (m *Machine) UploadsSettled(allOK bool) error {
	if m.phase != SubmittedUploading {
		return fmt.Errorf("uploads settled while %s", m.phase)
	}
	if allOK {
		m.phase = Submitted
	} else {
		m.phase = Editing
	}
	return nil
}

// Fail aborts an in-flight attempt and returns to Editing. Calling it
// while already Editing is a no-op so a late failure message cannot
// corrupt the phase.
func (m *Machine) Fail() {
	if m.phase == Submitting || m.phase == SubmittedUploading {
		m.phase = Editing
	}
}

// Reset returns to Editing from the Submitted phase, for starting a
// fresh draft.
func (m *Machine) Reset() error {
	if m.phase != Submitted && m.phase != Editing {
		return fmt.Errorf("cannot reset while %s", m.phase)
	}
	m.phase = Editing
	return nil
}
