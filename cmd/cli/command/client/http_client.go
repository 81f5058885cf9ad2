package client

// http_client.go talks to the YaMDb REST API on behalf of the CLI commands.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yamdb/cmd/cli/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d, %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// NewHTTPClient expects the API root, e.g. http://localhost:8080/api/v1.
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error, Code: e.Code}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// Auth

func (c *HTTPClient) Signup(ctx context.Context, email, username string) (*dto.SignupResponse, error) {
	var result dto.SignupResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, dto.SignupRequest{Email: email, Username: username}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Token(ctx context.Context, username, code string) (string, error) {
	var result dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token", nil, dto.TokenRequest{Username: username, ConfirmationCode: code}, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.User, error) {
	var result dto.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Catalogue

type TitleQuery struct {
	Genre    string
	Category string
	Name     string
	Year     int
	Page     int
}

func (c *HTTPClient) ListTitles(ctx context.Context, tq TitleQuery) (*dto.Page[dto.Title], error) {
	q := pageQuery(tq.Page)
	if tq.Genre != "" {
		q.Set("genre", tq.Genre)
	}
	if tq.Category != "" {
		q.Set("category", tq.Category)
	}
	if tq.Name != "" {
		q.Set("name", tq.Name)
	}
	if tq.Year != 0 {
		q.Set("year", strconv.Itoa(tq.Year))
	}

	var result dto.Page[dto.Title]
	if err := c.do(ctx, http.MethodGet, "/titles", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetTitle(ctx context.Context, id int64) (*dto.Title, error) {
	var result dto.Title
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTaxonomy lists "genres" or "categories".
func (c *HTTPClient) ListTaxonomy(ctx context.Context, kind, search string) (*dto.Page[dto.Slugged], error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var result dto.Page[dto.Slugged]
	if err := c.do(ctx, http.MethodGet, "/"+kind, q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reviews

func (c *HTTPClient) ListReviews(ctx context.Context, titleID int64, page int) (*dto.Page[dto.Review], error) {
	var result dto.Page[dto.Review]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d/reviews", titleID), pageQuery(page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, titleID int64, text string, score int) (*dto.Review, error) {
	var result dto.Review
	path := fmt.Sprintf("/titles/%d/reviews", titleID)
	if err := c.do(ctx, http.MethodPost, path, nil, dto.ReviewRequest{Text: text, Score: score}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d/reviews/%d", titleID, reviewID), nil, nil, nil)
}

// Comments

func (c *HTTPClient) ListComments(ctx context.Context, titleID, reviewID int64, page int) (*dto.Page[dto.Comment], error) {
	var result dto.Page[dto.Comment]
	path := fmt.Sprintf("/titles/%d/reviews/%d/comments", titleID, reviewID)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, titleID, reviewID int64, text string) (*dto.Comment, error) {
	var result dto.Comment
	path := fmt.Sprintf("/titles/%d/reviews/%d/comments", titleID, reviewID)
	if err := c.do(ctx, http.MethodPost, path, nil, dto.CommentRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64) error {
	path := fmt.Sprintf("/titles/%d/reviews/%d/comments/%d", titleID, reviewID, commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
