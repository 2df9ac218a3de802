package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPathWithPhotos(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Editing, m.Phase())
	assert.False(t, m.Locked())

	require.NoError(t, m.Submit(true))
	assert.Equal(t, Submitting, m.Phase())
	assert.True(t, m.Locked())

	require.NoError(t, m.RecordsCreated(true))
	assert.Equal(t, SubmittedUploading, m.Phase())
	assert.True(t, m.Locked())

	require.NoError(t, m.UploadsSettled(true))
	assert.Equal(t, Submitted, m.Phase())
	assert.False(t, m.Locked())

	require.NoError(t, m.Reset())
	assert.Equal(t, Editing, m.Phase())
}

// TestMachine_NoPhotoShortcut: with no uploads pending the attempt is
// complete the moment records exist.
func TestMachine_NoPhotoShortcut(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Submit(true))
	require.NoError(t, m.RecordsCreated(false))

	assert.Equal(t, Submitted, m.Phase())
}

// An invalid submit stays in Editing; the caller shows the aggregate
// notice.
func TestMachine_InvalidSubmitStaysEditing(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Submit(false))
	assert.Equal(t, Editing, m.Phase())
}

func TestMachine_FailDuringSubmitting(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Submit(true))

	m.Fail()
	assert.Equal(t, Editing, m.Phase())
}

// An upload failure counts as a submission failure: back to Editing,
// draft preserved by the caller.
func TestMachine_UploadFailureReturnsToEditing(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Submit(true))
	require.NoError(t, m.RecordsCreated(true))

	require.NoError(t, m.UploadsSettled(false))
	assert.Equal(t, Editing, m.Phase())
}

// Contradictory transitions are rejected, so "uploading but never
// submitted" style states cannot be reached.
func TestMachine_IllegalTransitions(t *testing.T) {
	m := NewMachine()
	assert.Error(t, m.RecordsCreated(true))
	assert.Error(t, m.UploadsSettled(true))

	require.NoError(t, m.Submit(true))
	assert.Error(t, m.Submit(true)) // double submission
	assert.Error(t, m.UploadsSettled(true))
	assert.Error(t, m.Reset())
}

func TestMachine_FailWhileEditingIsNoop(t *testing.T) {
	m := NewMachine()
	m.Fail()
	assert.Equal(t, Editing, m.Phase())
}
