package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warrick/screendesk/internal/domain"
)

// Test fixtures
func createValidDraft() *domain.TicketDraft {
	return &domain.TicketDraft{
		StoreName: "Acme 5",
		Contact: domain.Contact{
			Name:        "Thandi M",
			PhoneDigits: "+27218510119",
			Email:       "thandi@example.co.za",
		},
		Screens: []*domain.ScreenReport{
			{ID: 1, Location: "Entrance", Issue: "No signal"},
		},
	}
}

func TestValidate_ValidDraft(t *testing.T) {
	errs := Validate(createValidDraft())
	assert.Empty(t, errs)
}

// TestValidate_Completeness verifies the mapping contains exactly the
// keys for missing fields and nothing else.
func TestValidate_Completeness(t *testing.T) {
	draft := &domain.TicketDraft{
		Screens: []*domain.ScreenReport{{ID: 7}},
	}

	errs := Validate(draft)

	expected := []string{
		FieldStoreName,
		FieldContactName,
		FieldContactNumber,
		FieldContactEmail,
		ScreenKey(FieldScreenName, 7),
		ScreenKey(FieldScreenDescription, 7),
	}
	require.Len(t, errs, len(expected))
	for _, key := range expected {
		assert.Contains(t, errs, key)
	}
}

func TestValidate_BlankAfterTrim(t *testing.T) {
	draft := createValidDraft()
	draft.StoreName = "   "
	draft.Contact.Name = "\t"

	errs := Validate(draft)

	assert.Contains(t, errs, FieldStoreName)
	assert.Contains(t, errs, FieldContactName)
}

func TestValidate_PhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"formatted international", "+27 (21) 851-0119", true},
		{"bare digits", "0218510119", true},
		{"exactly seven digits", "8510119", true},
		{"too short", "021851", false},
		{"letters only", "call me", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := createValidDraft()
			draft.Contact.PhoneDigits = tt.phone

			errs := Validate(draft)

			if tt.ok {
				assert.NotContains(t, errs, FieldContactNumber)
			} else {
				assert.Equal(t, "Invalid phone number", errs[FieldContactNumber])
			}
		})
	}
}

func TestSanitizePhone_Idempotent(t *testing.T) {
	once := SanitizePhone("+27 (21) 851-0119")
	assert.Equal(t, "27218510119", once)
	assert.Equal(t, once, SanitizePhone(once))
	assert.GreaterOrEqual(t, len(once), 7)
}

func TestValidate_EmailBoundaries(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"a@b", false},
		{"ab.com", false},
		{"", false},
		{"a b@c.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			draft := createValidDraft()
			draft.Contact.Email = tt.email

			errs := Validate(draft)

			if tt.ok {
				assert.NotContains(t, errs, FieldContactEmail)
			} else {
				assert.Contains(t, errs, FieldContactEmail)
			}
		})
	}
}

// TestValidate_OtherRequiresDetail: the elaboration is mandatory only
// for the "Other" category.
func TestValidate_OtherRequiresDetail(t *testing.T) {
	draft := createValidDraft()
	draft.Screens[0].Issue = domain.IssueOther

	errs := Validate(draft)
	assert.Contains(t, errs, ScreenKey(FieldScreenOtherDescription, 1))

	draft.Screens[0].Detail = "Screen flickers at startup"
	errs = Validate(draft)
	assert.Empty(t, errs)

	// A catalog category never requires detail.
	draft.Screens[0].Issue = "Physical damage"
	draft.Screens[0].Detail = ""
	errs = Validate(draft)
	assert.Empty(t, errs)
}

func TestValidate_UnselectedIssue(t *testing.T) {
	draft := createValidDraft()
	draft.Screens[0].Issue = ""

	errs := Validate(draft)
	assert.Contains(t, errs, ScreenKey(FieldScreenDescription, 1))

	// A value outside the catalog is treated as unselected.
	draft.Screens[0].Issue = "Haunted"
	errs = Validate(draft)
	assert.Contains(t, errs, ScreenKey(FieldScreenDescription, 1))
}

// TestValidate_ScreenKeysAreStable: keys follow the screen's ID, not
// its position, so a screen keeps its errors when a predecessor goes.
func TestValidate_ScreenKeysAreStable(t *testing.T) {
	draft := createValidDraft()
	draft.Screens = append(draft.Screens, &domain.ScreenReport{ID: 2, Issue: "No signal"})

	errs := Validate(draft)
	require.Contains(t, errs, ScreenKey(FieldScreenName, 2))

	draft.Screens = draft.Screens[1:]
	errs = Validate(draft)
	assert.Contains(t, errs, ScreenKey(FieldScreenName, 2))
	assert.NotContains(t, errs, ScreenKey(FieldScreenName, 1))
}
