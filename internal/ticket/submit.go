package ticket

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/warrick/screendesk/internal/domain"
	"github.com/warrick/screendesk/internal/monday"
)

// ErrValidation is returned by Submit when the draft fails the
// validation gate. No board call is made in that case.
var ErrValidation = errors.New("fix the highlighted fields")

// StepError wraps a board error with the pipeline step that produced it
// (the parent item, or screen #n counted in draft order). The underlying
// error kind is preserved for errors.Is / errors.As.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Upload is one pending photo upload, assembled after all records exist.
type Upload struct {
	SubitemID string
	Photo     *domain.Photo
}

// Submitter runs the submission pipeline against a board service. It is
// stateless; each call works on the snapshot it is given.
type Submitter struct {
	svc monday.Service
}

// NewSubmitter creates a submitter backed by the given board service.
func NewSubmitter(svc monday.Service) *Submitter {
	return &Submitter{svc: svc}
}

// CreateRecords runs the sequential phase of the pipeline: the parent
// item, then one subitem per screen in draft order, each awaited before
// the next begins. Downstream consumers of the board rely on subitems
// appearing in entry order, so this must not be parallelized. On any
// failure the remaining steps are skipped; already-created records are
// left on the board (no compensation, see package docs on Submit).
//
// The returned result has SubitemIDs filled; its Attachments are empty
// until the upload phase runs. The uploads slice lists the photos that
// still need uploading, paired with their subitem IDs.
func (s *Submitter) CreateRecords(ctx context.Context, draft *domain.TicketDraft) (*domain.SubmissionResult, []Upload, error) {
	itemID, err := s.svc.CreateItem(ctx, draft.StoreName, monday.ItemValues(draft))
	if err != nil {
		return nil, nil, &StepError{Step: "create ticket", Err: err}
	}

	result := &domain.SubmissionResult{ItemID: itemID}
	var uploads []Upload

	for i, screen := range draft.Screens {
		subID, err := s.svc.CreateSubitem(ctx, itemID, screen.Title(), monday.SubitemValues(screen))
		if err != nil {
			return nil, nil, &StepError{Step: fmt.Sprintf("create screen #%d", i+1), Err: err}
		}
		result.SubitemIDs = append(result.SubitemIDs, subID)
		if screen.Photo != nil {
			uploads = append(uploads, Upload{SubitemID: subID, Photo: screen.Photo})
		}
	}

	return result, uploads, nil
}

// UploadOne performs a single pending upload and reports its outcome.
// Failures are recorded, not returned, so a caller fanning out uploads
// can let every one settle before judging the attempt.
func (s *Submitter) UploadOne(ctx context.Context, up Upload) domain.AttachmentOutcome {
	err := s.svc.UploadFile(ctx, up.SubitemID, up.Photo)
	if err != nil {
		err = &StepError{Step: "upload photo for subitem " + up.SubitemID, Err: err}
	}
	return domain.AttachmentOutcome{SubitemID: up.SubitemID, Err: err}
}

// UploadPhotos runs the parallel phase: every pending upload starts at
// once and every one is allowed to settle, so one failure never cancels
// the others. Outcomes come back in the same order as the uploads slice.
func (s *Submitter) UploadPhotos(ctx context.Context, uploads []Upload) []domain.AttachmentOutcome {
	outcomes := make([]domain.AttachmentOutcome, len(uploads))

	var wg sync.WaitGroup
	for i, up := range uploads {
		wg.Add(1)
		go func(i int, up Upload) {
			defer wg.Done()
			outcomes[i] = s.UploadOne(ctx, up)
		}(i, up)
	}
	wg.Wait()

	return outcomes
}

// Submit runs the whole pipeline once: validation gate, sequential
// record creation, parallel photo uploads. It is the non-interactive
// entry point; the TUI drives the two phases separately so it can report
// success between them.
//
// A failed attempt may leave already-created records on the board; no
// compensation is attempted.
func (s *Submitter) Submit(ctx context.Context, draft *domain.TicketDraft) (*domain.SubmissionResult, error) {
	if errs := Validate(draft); len(errs) > 0 {
		return nil, ErrValidation
	}

	result, uploads, err := s.CreateRecords(ctx, draft)
	if err != nil {
		return nil, err
	}

	result.Attachments = s.UploadPhotos(ctx, uploads)
	for _, a := range result.Attachments {
		if a.Err != nil {
			return result, a.Err
		}
	}
	return result, nil
}
