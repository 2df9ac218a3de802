package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/warrick/screendesk/internal/domain"
)

// RelayClient talks to the on-site relay, which forwards board mutations
// to monday.com. The relay exposes three endpoints:
//
//	POST /create-item     {boardId, itemName, columnValues}
//	POST /create-subitem  {parentItemId, itemName, columnValues}
//	POST /upload?item_id=&column_id=   multipart, single "file" field
//
// Responses mirror the upstream GraphQL shape: {data: {create_item:
// {id}}} on success, {error} or {errors: [{message}]} on rejection.
type RelayClient struct {
	baseURL string
	boardID string
	http    *http.Client
}

// NewRelayClient creates a client for the relay at baseURL, creating
// items on the given board.
func NewRelayClient(baseURL, boardID string) *RelayClient {
	return &RelayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		boardID: boardID,
		http:    http.DefaultClient,
	}
}

// relayResponse is the common response envelope for both create
// endpoints. Exactly one of the branches is populated.
type relayResponse struct {
	Data struct {
		CreateItem    *struct{ ID string } `json:"create_item"`
		CreateSubitem *struct{ ID string } `json:"create_subitem"`
	} `json:"data"`
	Error  string `json:"error"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// reject converts the response's error branches into the taxonomy, or
// returns nil if the response carries no rejection.
func (r *relayResponse) reject() error {
	if r.Error != "" {
		return &RejectError{Message: r.Error}
	}
	if len(r.Errors) > 0 {
		msgs := make([]string, len(r.Errors))
		for i, e := range r.Errors {
			msgs[i] = e.Message
		}
		return &RejectBatchError{Messages: msgs}
	}
	return nil
}

// CreateItem creates the parent ticket item.
func (c *RelayClient) CreateItem(ctx context.Context, title string, values ColumnValues) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}

	body := map[string]any{
		"boardId":      c.boardID,
		"itemName":     title,
		"columnValues": values,
	}

	resp, err := c.postJSON(ctx, "/create-item", body)
	if err != nil {
		return "", &TransportError{Op: "create-item", Err: err}
	}
	if err := resp.reject(); err != nil {
		return "", err
	}
	if resp.Data.CreateItem == nil || resp.Data.CreateItem.ID == "" {
		return "", ErrMissingID
	}
	return resp.Data.CreateItem.ID, nil
}

// CreateSubitem creates one screen entry under the parent item.
func (c *RelayClient) CreateSubitem(ctx context.Context, parentID, title string, values ColumnValues) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultScreenTitle
	}

	body := map[string]any{
		"parentItemId": parentID,
		"itemName":     title,
		"columnValues": values,
	}

	resp, err := c.postJSON(ctx, "/create-subitem", body)
	if err != nil {
		return "", &TransportError{Op: "create-subitem", Err: err}
	}
	if err := resp.reject(); err != nil {
		return "", err
	}
	if resp.Data.CreateSubitem == nil || resp.Data.CreateSubitem.ID == "" {
		return "", ErrMissingID
	}
	return resp.Data.CreateSubitem.ID, nil
}

// UploadFile uploads a photo into the subitem's file column. A nil photo
// is a no-op success.
func (c *RelayClient) UploadFile(ctx context.Context, subitemID string, photo *domain.Photo) error {
	if photo == nil {
		return nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", photo.Name)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	if _, err := part.Write(photo.Data); err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
	if err := mw.Close(); err != nil {
		return &TransportError{Op: "upload", Err: err}
	}

	q := url.Values{}
	q.Set("item_id", subitemID)
	q.Set("column_id", ColPhoto)
	endpoint := c.baseURL + "/upload?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return &TransportError{Op: "upload", Err: err}
	}
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

	var resp relayResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &TransportError{Op: "upload", Err: fmt.Errorf("malformed response: %w", err)}
	}
	return resp.reject()
}

// postJSON sends a JSON body to path and decodes the relay envelope.
func (c *RelayClient) postJSON(ctx context.Context, path string, body any) (*relayResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp relayResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	return &resp, nil
}
