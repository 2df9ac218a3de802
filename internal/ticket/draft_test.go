package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warrick/screendesk/internal/domain"
)

func TestNewStore(t *testing.T) {
	s := NewStore("")

	require.Len(t, s.Draft().Screens, 1)
	assert.Empty(t, s.Draft().StoreName)
	assert.Empty(t, s.Errors())
}

func TestNewStore_Prefill(t *testing.T) {
	s := NewStore("Acme Test")
	assert.Equal(t, "Acme Test", s.Draft().StoreName)
}

func TestAddScreen_StableIDs(t *testing.T) {
	s := NewStore("")
	first := s.Draft().Screens[0]
	second := s.AddScreen()
	third := s.AddScreen()

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, second.ID, third.ID)

	// IDs are never reused, even after a removal.
	require.NoError(t, s.RemoveScreen(third.ID))
	fourth := s.AddScreen()
	assert.NotEqual(t, third.ID, fourth.ID)
}

// TestRemoveScreen_Invariant: removing the middle of three screens
// leaves two, discards that screen's errors, and does not disturb
// error state for the others.
func TestRemoveScreen_Invariant(t *testing.T) {
	s := NewStore("")
	a := s.Draft().Screens[0]
	b := s.AddScreen()
	c := s.AddScreen()

	s.Validate() // all screens blank, every screen has errors
	require.Contains(t, s.Errors(), ScreenKey(FieldScreenName, b.ID))

	require.NoError(t, s.RemoveScreen(b.ID))

	assert.Len(t, s.Draft().Screens, 2)
	assert.NotContains(t, s.Errors(), ScreenKey(FieldScreenName, b.ID))
	assert.Contains(t, s.Errors(), ScreenKey(FieldScreenName, a.ID))
	assert.Contains(t, s.Errors(), ScreenKey(FieldScreenName, c.ID))
}

// Removing a screen whose errors are the only ones present must not
// panic or leave stale entries.
func TestRemoveScreen_OnlyErroredScreen(t *testing.T) {
	s := NewStore("Acme")
	a := s.Draft().Screens[0]
	a.Location = "Entrance"
	a.Issue = "No signal"
	b := s.AddScreen()
	b.Issue = "No signal" // location missing: the only screen error

	s.Validate()
	require.Contains(t, s.Errors(), ScreenKey(FieldScreenName, b.ID))

	require.NoError(t, s.RemoveScreen(b.ID))
	assert.NotContains(t, s.Errors(), ScreenKey(FieldScreenName, b.ID))
}

func TestRemoveScreen_LastIsDisallowed(t *testing.T) {
	s := NewStore("")
	only := s.Draft().Screens[0]

	err := s.RemoveScreen(only.ID)

	assert.ErrorIs(t, err, ErrLastScreen)
	assert.Len(t, s.Draft().Screens, 1)
}

// TestSetIssue_ClearsDetail: moving off "Other" drops the elaboration
// so a stale explanation is never submitted with a catalog category.
func TestSetIssue_ClearsDetail(t *testing.T) {
	s := NewStore("")
	screen := s.Draft().Screens[0]

	s.SetIssue(screen.ID, domain.IssueOther)
	screen.Detail = "It hums ominously"

	s.SetIssue(screen.ID, "No signal")

	assert.Equal(t, "No signal", screen.Issue)
	assert.Empty(t, screen.Detail)
}

func TestReset(t *testing.T) {
	s := NewStore("Acme Test")
	s.Draft().Contact.Name = "Thandi"
	s.AddScreen()
	s.Validate()
	require.NotEmpty(t, s.Errors())

	s.Reset()

	assert.Len(t, s.Draft().Screens, 1)
	assert.Empty(t, s.Draft().Contact.Name)
	assert.Empty(t, s.Errors())
	assert.Equal(t, "Acme Test", s.Draft().StoreName)
}

// TestSnapshot_IsIsolated: the submitter's snapshot must not observe
// edits made after the submit attempt started.
func TestSnapshot_IsIsolated(t *testing.T) {
	s := NewStore("Acme")
	s.Draft().Screens[0].Location = "Entrance"

	snap := s.Snapshot()
	s.Draft().Screens[0].Location = "Back wall"
	s.Draft().StoreName = "Changed"

	assert.Equal(t, "Entrance", snap.Screens[0].Location)
	assert.Equal(t, "Acme", snap.StoreName)
}
