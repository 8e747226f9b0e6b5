// Package client is a typed adapter over the DeepInsight REST API. Every
// failure is returned as a *Error whose Kind is one of ErrValidation, ErrAuth,
// ErrNotFound, ErrNetwork or ErrUnknown.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds every request made by a Client.
	DefaultTimeout = 10 * time.Second
	// MaxImageSize is the largest image UploadImage sends.
	MaxImageSize = 5 << 20

	maxResponseBody = 8 << 20
)

// Client talks to one API server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	tokens  TokenStore
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. hc is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// http.Client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTokenStore sets where the admin session is kept between calls.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for the causes of failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  NewMemoryTokenStore(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the server address the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// ---------------------------------------------------------------------------
// 公開 API
// ---------------------------------------------------------------------------

type inquiryRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Company     string   `json:"company,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Message     string   `json:"message"`
	ServiceType []string `json:"serviceType"`
	Status      string   `json:"status,omitempty"`
}

// SubmitInquiry sends the public inquiry form and returns the stored inquiry.
func (c *Client) SubmitInquiry(ctx context.Context, in InquiryInput) (*Inquiry, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, validationError("이름을 입력해 주세요.")
	case strings.TrimSpace(in.Email) == "":
		return nil, validationError("이메일을 입력해 주세요.")
	case strings.TrimSpace(in.Message) == "":
		return nil, validationError("문의 내용을 입력해 주세요.")
	case len(in.ServiceTypes) == 0:
		return nil, validationError("서비스 유형을 하나 이상 선택해 주세요.")
	}

	body := inquiryRequest{
		Name:        in.Name,
		Email:       in.Email,
		Company:     in.Company,
		Phone:       in.Phone,
		Message:     in.Message,
		ServiceType: in.ServiceTypes,
		Status:      in.Status,
	}
	var w wireInquiry
	if err := c.doJSON(ctx, http.MethodPost, "/api/inquiries", "", body, &w); err != nil {
		return nil, err
	}
	inq := w.canonical()
	return &inq, nil
}

// FetchPosts returns one page of published posts, newest first.
func (c *Client) FetchPosts(ctx context.Context, req PageRequest) (*Page[Post], error) {
	return c.fetchPosts(ctx, "/api/posts", "", req)
}

// FetchRecentPosts returns the newest published posts.
func (c *Client) FetchRecentPosts(ctx context.Context) ([]Post, error) {
	var ws []wirePost
	if err := c.doJSON(ctx, http.MethodGet, "/api/posts/recent", "", nil, &ws); err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(ws))
	for _, w := range ws {
		posts = append(posts, w.canonical())
	}
	return posts, nil
}

// FetchPostByID returns one published post. The server counts the view.
func (c *Client) FetchPostByID(ctx context.Context, id string) (*Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("게시글 ID가 필요합니다.")
	}
	var w wirePost
	if err := c.doJSON(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), "", nil, &w); err != nil {
		return nil, err
	}
	p := w.canonical()
	return &p, nil
}

// ---------------------------------------------------------------------------
// 管理者認証
// ---------------------------------------------------------------------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin exchanges credentials for a session and stores it. Every
// credential failure yields the same ErrAuth message.
func (c *Client) AdminLogin(ctx context.Context, cred Credentials) (*Session, error) {
	if strings.TrimSpace(cred.Email) == "" || cred.Password == "" {
		return nil, validationError("이메일과 비밀번호를 입력해 주세요.")
	}
	var w wireLogin
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", "", loginRequest{Email: cred.Email, Password: cred.Password}, &w)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Kind == ErrAuth {
			e.Message = msgInvalidLogin
		}
		return nil, err
	}
	s := w.session(c.now())
	if s.Token == "" {
		return nil, &Error{Kind: ErrUnknown, Message: msgUnknown, Err: errors.New("login response without token")}
	}
	if err := c.tokens.Save(s); err != nil {
		c.logger.Warn("save session failed", "error", err)
	}
	return s, nil
}

// AdminLogout clears the stored session and then revokes it on the server on a
// best-effort basis. With a nil s the stored session is revoked. Logging out
// twice is not an error.
func (c *Client) AdminLogout(ctx context.Context, s *Session) error {
	if s == nil {
		stored, err := c.tokens.Load()
		if err != nil {
			c.logger.Warn("load session failed", "error", err)
		}
		s = stored
	}
	if err := c.tokens.Clear(); err != nil {
		return &Error{Kind: ErrUnknown, Message: msgUnknown, Err: err}
	}
	if s == nil || s.Token == "" {
		return nil
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/logout", s.Token, nil, nil); err != nil {
		c.logger.Info("remote logout failed", "error", err)
	}
	return nil
}

// CurrentUser returns the stored session once the server confirms it, or nil.
// It never fails: any problem is treated as "not signed in".
func (c *Client) CurrentUser(ctx context.Context) *Session {
	s, err := c.tokens.Load()
	if err != nil {
		c.logger.Warn("load session failed", "error", err)
		return nil
	}
	if s == nil || s.Token == "" {
		return nil
	}
	if s.Expired(c.now()) {
		_ = c.tokens.Clear()
		return nil
	}

	var w wireAdmin
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/me", s.Token, nil, &w); err != nil {
		if errors.Is(err, ErrAuth) {
			_ = c.tokens.Clear()
		}
		return nil
	}
	s.Admin = w.canonical()
	return s
}

// ---------------------------------------------------------------------------
// 管理者 API
// ---------------------------------------------------------------------------

// FetchInquiries returns one page of inquiries, newest first.
func (c *Client) FetchInquiries(ctx context.Context, s *Session, req InquiryPageRequest) (*Page[Inquiry], error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	q, err := pageQuery(req.Page, req.Size)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != "all" {
		if !IsStatus(req.Status) {
			return nil, validationError("알 수 없는 처리 상태입니다.")
		}
		q.Set("status", req.Status)
	}
	var w wirePage[wireInquiry]
	if err := c.authed(ctx, http.MethodGet, "/api/admin/inquiries?"+q.Encode(), s, nil, &w); err != nil {
		return nil, err
	}
	return convertPage(w, wireInquiry.canonical), nil
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateInquiryStatus changes the status of one inquiry.
func (c *Client) UpdateInquiryStatus(ctx context.Context, s *Session, id, status string) (*Inquiry, error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	if !IsStatus(status) {
		return nil, validationError("알 수 없는 처리 상태입니다.")
	}
	if strings.TrimSpace(id) == "" {
		return nil, validationError("문의 ID가 필요합니다.")
	}
	var w wireInquiry
	if err := c.authed(ctx, http.MethodPut, "/api/admin/inquiries/"+url.PathEscape(id), s, statusRequest{Status: status}, &w); err != nil {
		return nil, err
	}
	inq := w.canonical()
	return &inq, nil
}

// FetchAllPosts returns one page of posts including drafts.
func (c *Client) FetchAllPosts(ctx context.Context, s *Session, req PageRequest) (*Page[Post], error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	return c.fetchPosts(ctx, "/api/admin/posts", s.Token, req)
}

type postRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author,omitempty"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Published *bool  `json:"published,omitempty"`
}

func newPostRequest(in PostInput) (postRequest, error) {
	if strings.TrimSpace(in.Title) == "" {
		return postRequest{}, validationError("제목을 입력해 주세요.")
	}
	if strings.TrimSpace(in.Content) == "" {
		return postRequest{}, validationError("내용을 입력해 주세요.")
	}
	return postRequest{
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		Category:  strings.ToUpper(in.Category),
		ImageURL:  in.ImageURL,
		Published: in.Published,
	}, nil
}

// CreatePost creates a post.
func (c *Client) CreatePost(ctx context.Context, s *Session, in PostInput) (*Post, error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	body, err := newPostRequest(in)
	if err != nil {
		return nil, err
	}
	var w wirePost
	if err := c.authed(ctx, http.MethodPost, "/api/admin/posts", s, body, &w); err != nil {
		return nil, err
	}
	p := w.canonical()
	return &p, nil
}

// UpdatePost replaces the editable fields of a post.
func (c *Client) UpdatePost(ctx context.Context, s *Session, id string, in PostInput) (*Post, error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	if strings.TrimSpace(id) == "" {
		return nil, validationError("게시글 ID가 필요합니다.")
	}
	body, err := newPostRequest(in)
	if err != nil {
		return nil, err
	}
	var w wirePost
	if err := c.authed(ctx, http.MethodPut, "/api/admin/posts/"+url.PathEscape(id), s, body, &w); err != nil {
		return nil, err
	}
	p := w.canonical()
	return &p, nil
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, s *Session, id string) error {
	if s == nil || s.Token == "" {
		return sessionRequired()
	}
	if strings.TrimSpace(id) == "" {
		return validationError("게시글 ID가 필요합니다.")
	}
	return c.authed(ctx, http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), s, nil, nil)
}

// UploadImage uploads an image and returns its public URL. The server decides
// the content type from the bytes, not from filename.
func (c *Client) UploadImage(ctx context.Context, s *Session, filename string, r io.Reader) (*UploadedImage, error) {
	if s == nil || s.Token == "" {
		return nil, sessionRequired()
	}
	if r == nil {
		return nil, validationError("업로드할 파일을 선택해 주세요.")
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, &Error{Kind: ErrUnknown, Message: "파일을 읽을 수 없습니다.", Err: err}
	}
	if len(data) == 0 {
		return nil, validationError("업로드할 파일을 선택해 주세요.")
	}
	if len(data) > MaxImageSize {
		return nil, validationError("이미지는 5MB 이하만 업로드할 수 있습니다.")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename == "" {
		filename = "image"
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: ErrUnknown, Message: msgUnknown, Err: err}
	}
	if _, err := fw.Write(data); err != nil {
		return nil, &Error{Kind: ErrUnknown, Message: msgUnknown, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: ErrUnknown, Message: msgUnknown, Err: err}
	}

	var img UploadedImage
	err = c.do(ctx, http.MethodPost, "/api/admin/upload", s.Token, &buf, mw.FormDataContentType(), &img)
	if err != nil {
		c.dropOnAuthFailure(err)
		return nil, err
	}
	return &img, nil
}

// ---------------------------------------------------------------------------
// transport
// ---------------------------------------------------------------------------

func (c *Client) fetchPosts(ctx context.Context, path, token string, req PageRequest) (*Page[Post], error) {
	q, err := pageQuery(req.Page, req.Size)
	if err != nil {
		return nil, err
	}
	if req.Category != "" {
		q.Set("category", strings.ToUpper(req.Category))
	}
	var w wirePage[wirePost]
	err = c.doJSON(ctx, http.MethodGet, path+"?"+q.Encode(), token, nil, &w)
	if err != nil {
		if token != "" {
			c.dropOnAuthFailure(err)
		}
		return nil, err
	}
	return convertPage(w, wirePost.canonical), nil
}

func pageQuery(page, size int) (url.Values, error) {
	if page < 0 {
		return nil, validationError("페이지 번호는 0 이상이어야 합니다.")
	}
	if size <= 0 {
		return nil, validationError("페이지 크기는 1 이상이어야 합니다.")
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q, nil
}

// authed performs a privileged call. A rejected session is removed from the
// token store so the next CurrentUser reports no session.
func (c *Client) authed(ctx context.Context, method, path string, s *Session, body, out any) error {
	err := c.doJSON(ctx, method, path, s.Token, body, out)
	if err != nil {
		c.dropOnAuthFailure(err)
	}
	return err
}

func (c *Client) dropOnAuthFailure(err error) {
	if !errors.Is(err, ErrAuth) {
		return
	}
	if cerr := c.tokens.Clear(); cerr != nil {
		c.logger.Warn("clear rejected session failed", "error", cerr)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var r io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: ErrUnknown, Message: msgUnknown, Err: fmt.Errorf("encode request: %w", err)}
		}
		r = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, r, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logger.Error("build request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: ErrUnknown, Message: msgUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: ErrNetwork, Message: msgNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.logger.Warn("read response failed", "method", method, "path", path, "error", err)
		return &Error{Kind: ErrNetwork, Message: msgNetwork, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var we wireError
		_ = json.Unmarshal(data, &we)
		e := statusError(resp.StatusCode, we.Message)
		e.Err = fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, we.Error)
		c.logger.Info("request rejected", "method", method, "path", path, "status", resp.StatusCode, "code", we.Error)
		return e
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("decode response failed", "method", method, "path", path, "error", err)
		return &Error{Kind: ErrUnknown, Message: msgUnknown, Status: resp.StatusCode, Err: err}
	}
	return nil
}
