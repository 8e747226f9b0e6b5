package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// The wire types below accept both the camelCase spelling the API emits and
// the snake_case spelling of row-oriented stores, and convert to one shape.

// flexStrings decodes a JSON string or array of strings.
type flexStrings []string

func (l *flexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*l = nil
		// comma separated lists come from stores without array columns
		for _, part := range strings.Split(one, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*l = append(*l, part)
			}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// flexTime decodes an RFC 3339 timestamp. null, "" and unparsable values
// decode to the zero time so a bad field never fails the whole response.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		*t = flexTime{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	*t = flexTime{}
	return nil
}

func firstTime(ts ...flexTime) time.Time {
	for _, t := range ts {
		if !time.Time(t).IsZero() {
			return time.Time(t)
		}
	}
	return time.Time{}
}

func firstString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

type wireInquiry struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Company          string      `json:"company"`
	CompanyName      string      `json:"companyName"`
	CompanyNameSnake string      `json:"company_name"`
	Phone            string      `json:"phone"`
	Message          string      `json:"message"`
	ServiceType      flexStrings `json:"serviceType"`
	ServiceTypeSnake flexStrings `json:"service_type"`
	Status           string      `json:"status"`
	CreatedAt        flexTime    `json:"createdAt"`
	CreatedAtSnake   flexTime    `json:"created_at"`
}

func (w wireInquiry) canonical() Inquiry {
	types := []string(w.ServiceType)
	if len(types) == 0 {
		types = w.ServiceTypeSnake
	}
	if types == nil {
		types = []string{}
	}
	return Inquiry{
		ID:           w.ID,
		Name:         w.Name,
		Email:        w.Email,
		Company:      firstString(w.Company, w.CompanyName, w.CompanyNameSnake),
		Phone:        w.Phone,
		Message:      w.Message,
		ServiceTypes: types,
		Status:       firstString(w.Status, StatusPending),
		CreatedAt:    firstTime(w.CreatedAt, w.CreatedAtSnake),
	}
}

type wirePost struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Author         string   `json:"author"`
	Category       string   `json:"category"`
	ImageURL       string   `json:"imageUrl"`
	ImageURLSnake  string   `json:"image_url"`
	Published      *bool    `json:"published"`
	Views          int      `json:"views"`
	ViewCount      int      `json:"view_count"`
	CreatedAt      flexTime `json:"createdAt"`
	CreatedAtSnake flexTime `json:"created_at"`
	UpdatedAt      flexTime `json:"updatedAt"`
	UpdatedAtSnake flexTime `json:"updated_at"`
}

func (w wirePost) canonical() Post {
	published := true
	if w.Published != nil {
		published = *w.Published
	}
	views := w.Views
	if views == 0 {
		views = w.ViewCount
	}
	return Post{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		Author:    firstString(w.Author, DefaultAuthor),
		Category:  strings.ToUpper(w.Category),
		ImageURL:  firstString(w.ImageURL, w.ImageURLSnake),
		Published: published,
		Views:     views,
		CreatedAt: firstTime(w.CreatedAt, w.CreatedAtSnake),
		UpdatedAt: firstTime(w.UpdatedAt, w.UpdatedAtSnake),
	}
}

type wirePage[T any] struct {
	Content            []T `json:"content"`
	TotalElements      int `json:"totalElements"`
	TotalElementsSnake int `json:"total_elements"`
	TotalPages         int `json:"totalPages"`
	TotalPagesSnake    int `json:"total_pages"`
	Size               int `json:"size"`
	Number             int `json:"number"`
}

func convertPage[W, T any](w wirePage[W], conv func(W) T) *Page[T] {
	content := make([]T, 0, len(w.Content))
	for _, item := range w.Content {
		content = append(content, conv(item))
	}
	total := w.TotalElements
	if total == 0 {
		total = w.TotalElementsSnake
	}
	pages := w.TotalPages
	if pages == 0 {
		pages = w.TotalPagesSnake
	}
	return &Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Size:          w.Size,
		Number:        w.Number,
	}
}

type wireAdmin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (w wireAdmin) canonical() Admin {
	return Admin{ID: w.ID, Email: w.Email, Name: w.Name}
}

type wireLogin struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expiresIn"`
	ExpiresAt   flexTime  `json:"expiresAt"`
	Admin       wireAdmin `json:"admin"`
}

func (w wireLogin) session(now time.Time) *Session {
	expires := time.Time(w.ExpiresAt)
	if expires.IsZero() && w.ExpiresIn > 0 {
		expires = now.Add(time.Duration(w.ExpiresIn) * time.Second)
	}
	return &Session{
		Token:     firstString(w.Token, w.AccessToken),
		ExpiresAt: expires,
		Admin:     w.Admin.canonical(),
	}
}

type wireError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
