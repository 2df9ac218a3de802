package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"
	"github.com/warrick/screendesk/internal/domain"
)

const (
	mondayAPIURL  = "https://api.monday.com/v2"
	mondayFileURL = "https://api.monday.com/v2/file"
)

// DirectClient talks to the monday.com GraphQL API without the relay.
// It is used when the client runs with an API token instead of a relay
// endpoint, and implements the same Service contract.
type DirectClient struct {
	gql     *graphql.Client
	token   string
	boardID string
	http    *http.Client
	fileURL string
}

// NewDirectClient creates a client authenticating with the given API
// token, creating items on the given board.
func NewDirectClient(token, boardID string) *DirectClient {
	return &DirectClient{
		gql:     graphql.NewClient(mondayAPIURL),
		token:   token,
		boardID: boardID,
		http:    http.DefaultClient,
		fileURL: mondayFileURL,
	}
}

// WithEndpoints points the client at alternate GraphQL and file-upload
// endpoints instead of the production API.
func (c *DirectClient) WithEndpoints(apiURL, fileURL string) *DirectClient {
	c.gql = graphql.NewClient(apiURL)
	c.fileURL = fileURL
	return c
}

// makeRequest executes a GraphQL request with authentication.
func (c *DirectClient) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	req.Header.Set("Authorization", c.token)
	return c.gql.Run(ctx, req, resp)
}

// normalize maps a graphql client error into the taxonomy. The client
// surfaces only the first server-reported error, with a "graphql:"
// prefix, so mutation rejections always come back as a single
// RejectError; anything without the prefix failed before a response
// was decoded.
func normalize(op string, err error) error {
	if msg, ok := strings.CutPrefix(err.Error(), "graphql: "); ok {
		return &RejectError{Message: msg}
	}
	return &TransportError{Op: op, Err: err}
}

// CreateItem creates the parent ticket item via the create_item mutation.
func (c *DirectClient) CreateItem(ctx context.Context, title string, values ColumnValues) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return "", &TransportError{Op: "create-item", Err: err}
	}

	req := graphql.NewRequest(`
		mutation($boardId: ID!, $itemName: String!, $columnValues: JSON!) {
			create_item(board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
				id
			}
		}
	`)

	req.Var("boardId", c.boardID)
	req.Var("itemName", title)
	req.Var("columnValues", string(encoded))

	var resp struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", normalize("create-item", err)
	}
	if resp.CreateItem.ID == "" {
		return "", ErrMissingID
	}
	return resp.CreateItem.ID, nil
}

// CreateSubitem creates one screen entry via the create_subitem mutation.
func (c *DirectClient) CreateSubitem(ctx context.Context, parentID, title string, values ColumnValues) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultScreenTitle
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return "", &TransportError{Op: "create-subitem", Err: err}
	}

	req := graphql.NewRequest(`
		mutation($parentItemId: ID!, $itemName: String!, $columnValues: JSON!) {
			create_subitem(parent_item_id: $parentItemId, item_name: $itemName, column_values: $columnValues) {
				id
			}
		}
	`)

	req.Var("parentItemId", parentID)
	req.Var("itemName", title)
	req.Var("columnValues", string(encoded))

	var resp struct {
		CreateSubitem struct {
			ID string `json:"id"`
		} `json:"create_subitem"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", normalize("create-subitem", err)
	}
	if resp.CreateSubitem.ID == "" {
		return "", ErrMissingID
	}
	return resp.CreateSubitem.ID, nil
}

// UploadFile binds a photo to the subitem's file column. The file API
// takes a multipart form with the mutation in a "query" field, so this
// goes through net/http rather than the GraphQL client.
func (c *DirectClient) UploadFile(ctx context.Context, subitemID string, photo *domain.Photo) error {
	if photo == nil {
		return nil
	}

	mutation := fmt.Sprintf(
		`mutation($file: File!) { add_file_to_column(item_id: %s, column_id: %q, file: $file) { id } }`,
		subitemID, ColPhoto,
	)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("query", mutation); err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	part, err := mw.CreateFormFile("variables[file]", photo.Name)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	if _, err := part.Write(photo.Data); err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	if err := mw.Close(); err != nil {
		return &TransportError{Op: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fileURL, &buf)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	httpResp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}

	var resp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &TransportError{Op: "upload", Err: fmt.Errorf("malformed response: %w", err)}
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return &RejectBatchError{Messages: msgs}
	}
	return nil
}
