package ticket

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warrick/screendesk/internal/domain"
	"github.com/warrick/screendesk/internal/monday"
)

// fakeBoard records every call in order and can be told to fail
// specific steps. Uploads may run concurrently, so recording is locked.
type fakeBoard struct {
	mu    sync.Mutex
	calls []string

	failItem      error
	failSubitemAt int              // 1-based subitem call index to fail, 0 = never
	failUploadFor map[string]error // subitem ID -> upload error

	nextSubitem int
}

func (f *fakeBoard) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBoard) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBoard) CreateItem(ctx context.Context, title string, values monday.ColumnValues) (string, error) {
	f.record("item:" + title)
	if f.failItem != nil {
		return "", f.failItem
	}
	return "item-1", nil
}

func (f *fakeBoard) CreateSubitem(ctx context.Context, parentID, title string, values monday.ColumnValues) (string, error) {
	f.record("subitem:" + title)
	f.nextSubitem++
	if f.failSubitemAt == f.nextSubitem {
		return "", &monday.RejectError{Message: "column invalid"}
	}
	return fmt.Sprintf("sub-%d", f.nextSubitem), nil
}

func (f *fakeBoard) UploadFile(ctx context.Context, subitemID string, photo *domain.Photo) error {
	f.record("upload:" + subitemID)
	if err, ok := f.failUploadFor[subitemID]; ok {
		return err
	}
	return nil
}

func draftWithScreens(locations ...string) *domain.TicketDraft {
	d := &domain.TicketDraft{
		StoreName: "Acme 5",
		Contact: domain.Contact{
			Name:        "Thandi M",
			PhoneDigits: "0218510119",
			Email:       "thandi@example.co.za",
		},
	}
	for i, loc := range locations {
		d.Screens = append(d.Screens, &domain.ScreenReport{
			ID:       i + 1,
			Location: loc,
			Issue:    "No signal",
		})
	}
	return d
}

// TestSubmit_EndToEnd: one screen, no photo: exactly one item call, one
// subitem call, zero upload calls.
func TestSubmit_EndToEnd(t *testing.T) {
	board := &fakeBoard{}
	sub := NewSubmitter(board)

	result, err := sub.Submit(context.Background(), draftWithScreens("Entrance"))

	require.NoError(t, err)
	assert.Equal(t, "item-1", result.ItemID)
	assert.Equal(t, []string{"sub-1"}, result.SubitemIDs)
	assert.Empty(t, result.Attachments)
	assert.Equal(t, []string{"item:Acme 5", "subitem:Entrance"}, board.recorded())
}

// TestCreateRecords_Ordering: subitems are created strictly in draft
// order, each awaited before the next begins.
func TestCreateRecords_Ordering(t *testing.T) {
	board := &fakeBoard{}
	sub := NewSubmitter(board)
	draft := draftWithScreens("A", "B", "C")

	result, uploads, err := sub.CreateRecords(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, []string{"sub-1", "sub-2", "sub-3"}, result.SubitemIDs)
	assert.Empty(t, uploads)
	assert.Equal(t, []string{"item:Acme 5", "subitem:A", "subitem:B", "subitem:C"}, board.recorded())
}

// TestCreateRecords_FailFast: a subitem failure skips the remaining
// screens; earlier records are left in place.
func TestCreateRecords_FailFast(t *testing.T) {
	board := &fakeBoard{failSubitemAt: 2}
	sub := NewSubmitter(board)
	draft := draftWithScreens("A", "B", "C")

	_, _, err := sub.CreateRecords(context.Background(), draft)

	require.Error(t, err)
	var step *StepError
	require.ErrorAs(t, err, &step)
	assert.Equal(t, "create screen #2", step.Step)

	var reject *monday.RejectError
	assert.ErrorAs(t, err, &reject)

	// No call for C after B failed.
	assert.Equal(t, []string{"item:Acme 5", "subitem:A", "subitem:B"}, board.recorded())
}

func TestCreateRecords_ParentFailureAborts(t *testing.T) {
	board := &fakeBoard{failItem: monday.ErrEmptyTitle}
	sub := NewSubmitter(board)

	_, _, err := sub.CreateRecords(context.Background(), draftWithScreens("A", "B"))

	require.ErrorIs(t, err, monday.ErrEmptyTitle)
	assert.Equal(t, []string{"item:Acme 5"}, board.recorded())
}

// TestUploadPhotos_Independence: one upload failing does not cancel the
// others; both settle and the failure is reported per attachment.
func TestUploadPhotos_Independence(t *testing.T) {
	board := &fakeBoard{
		failUploadFor: map[string]error{
			"sub-1": &monday.RejectBatchError{Messages: []string{"file too large"}},
		},
	}
	sub := NewSubmitter(board)

	photo := &domain.Photo{Name: "a.jpg", Data: []byte("x")}
	outcomes := sub.UploadPhotos(context.Background(), []Upload{
		{SubitemID: "sub-1", Photo: photo},
		{SubitemID: "sub-2", Photo: photo},
	})

	require.Len(t, outcomes, 2)
	assert.Error(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)

	calls := board.recorded()
	assert.Contains(t, calls, "upload:sub-1")
	assert.Contains(t, calls, "upload:sub-2")
}

// TestSubmit_UploadFailureIsSubmissionFailure: the records exist, but
// the attempt as a whole reports failure.
func TestSubmit_UploadFailureIsSubmissionFailure(t *testing.T) {
	board := &fakeBoard{
		failUploadFor: map[string]error{
			"sub-1": &monday.RejectBatchError{Messages: []string{"boom"}},
		},
	}
	sub := NewSubmitter(board)

	draft := draftWithScreens("Entrance")
	draft.Screens[0].Photo = &domain.Photo{Name: "a.jpg", Data: []byte("x")}

	result, err := sub.Submit(context.Background(), draft)

	require.Error(t, err)
	var step *StepError
	assert.ErrorAs(t, err, &step)
	require.NotNil(t, result)
	assert.Equal(t, "item-1", result.ItemID)
	assert.Len(t, result.UploadFailures(), 1)
}

// TestSubmit_ValidationGate: an invalid draft never reaches the board.
func TestSubmit_ValidationGate(t *testing.T) {
	board := &fakeBoard{}
	sub := NewSubmitter(board)

	_, err := sub.Submit(context.Background(), &domain.TicketDraft{
		Screens: []*domain.ScreenReport{{ID: 1}},
	})

	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, board.recorded())
}

func TestSubmit_UploadsOnlyForPhotographedScreens(t *testing.T) {
	board := &fakeBoard{}
	sub := NewSubmitter(board)

	draft := draftWithScreens("A", "B", "C")
	draft.Screens[1].Photo = &domain.Photo{Name: "b.jpg", Data: []byte("x")}

	result, err := sub.Submit(context.Background(), draft)

	require.NoError(t, err)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "sub-2", result.Attachments[0].SubitemID)
	assert.Contains(t, board.recorded(), "upload:sub-2")
	assert.NotContains(t, board.recorded(), "upload:sub-1")
	assert.NotContains(t, board.recorded(), "upload:sub-3")
}
