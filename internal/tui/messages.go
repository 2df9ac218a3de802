// Package tui provides Bubble Tea models for the interactive ticket form.
package tui

import (
	"github.com/warrick/screendesk/internal/domain"
	"github.com/warrick/screendesk/internal/ticket"
)

// openFormMsg is emitted when the user leaves the landing screen.
type openFormMsg struct{}

// recordsCreatedMsg is emitted when the sequential phase of the pipeline
// finishes: the parent item and every subitem exist on the board.
// Uploads lists the photos still pending.
type recordsCreatedMsg struct {
	result  *domain.SubmissionResult
	uploads []ticket.Upload
}

// submitFailedMsg is emitted when record creation aborts. The draft is
// preserved so the user can retry.
type submitFailedMsg struct {
	err error
}

// uploadSettledMsg is emitted once per photo upload as it settles,
// successfully or not. index addresses the upload's slot in the pending
// list.
type uploadSettledMsg struct {
	index   int
	outcome domain.AttachmentOutcome
}

// ErrorMsg is emitted when an error occurs outside the submit pipeline.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}
