// Package monday provides clients for the support ticket board.
// Two implementations exist: RelayClient speaks the JSON/multipart
// contract of the on-site relay, DirectClient speaks the monday.com
// GraphQL API. Both normalize failures into the same error taxonomy.
package monday

import (
	"context"

	"github.com/warrick/screendesk/internal/domain"
)

// Column identifiers on the ticket board. These are a fixed contract
// with the board configuration and must not be renamed.
const (
	ColContactEmail = "email_mkssfg0w"
	ColContactPhone = "phone_mkssfmma"
	ColContactName  = "text_mkssz2ke"
	ColStoreCode    = "text_mkss9qtd"

	ColIssue       = "text_mkss1h6r"
	ColIssueDetail = "text_mksswvza"
	ColPhoto       = "file_mksszjy2"
)

// DefaultBoardID is the production ticket board.
const DefaultBoardID = "9575288798"

// ColumnValues is the attribute mapping sent with a create call. Values
// are either plain strings or nested objects (the email column wants a
// dual email/text representation).
type ColumnValues map[string]any

// Service is the board operations surface the submitter depends on.
// All three operations are single-shot: no implementation retries.
type Service interface {
	// CreateItem creates the parent ticket item and returns its ID.
	// Fails with ErrEmptyTitle before any request if title is blank.
	CreateItem(ctx context.Context, title string, values ColumnValues) (string, error)

	// CreateSubitem creates one screen entry under the parent and
	// returns its ID. A blank title is replaced with a placeholder.
	CreateSubitem(ctx context.Context, parentID, title string, values ColumnValues) (string, error)

	// UploadFile binds a photo to a subitem's file column. A nil photo
	// succeeds trivially without a request.
	UploadFile(ctx context.Context, subitemID string, photo *domain.Photo) error
}

// ItemValues packs the store identity and contact fields of a draft into
// the parent item's column mapping.
func ItemValues(d *domain.TicketDraft) ColumnValues {
	values := ColumnValues{
		ColContactEmail: map[string]string{
			"email": d.Contact.Email,
			"text":  d.Contact.Email,
		},
		ColContactPhone: d.Contact.PhoneDigits,
		ColContactName:  d.Contact.Name,
	}
	if d.StoreCode != "" {
		values[ColStoreCode] = d.StoreCode
	}
	return values
}

// SubitemValues packs one screen report into the subitem column mapping.
// The detail column is only sent for the "Other" category; for every
// other category the detail text is a local note.
func SubitemValues(s *domain.ScreenReport) ColumnValues {
	values := ColumnValues{
		ColIssue: s.Issue,
	}
	if s.Issue == domain.IssueOther {
		values[ColIssueDetail] = s.Detail
	}
	return values
}
