package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/deepinsight/backend/pkg/client"
)

// AdminPageSize is the page size of both admin lists.
const AdminPageSize = 20

// DeletePrompt is shown before a post is deleted.
const DeletePrompt = "정말 삭제하시겠습니까?"

// ErrCancelled is returned when the operator declines a confirmation.
var ErrCancelled = errors.New("console: cancelled")

// Tab selects the visible admin list.
type Tab int

const (
	TabInquiries Tab = iota
	TabPosts
)

func (t Tab) String() string {
	switch t {
	case TabInquiries:
		return "inquiries"
	case TabPosts:
		return "posts"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// PostFormMode is the sub-state of the post editor.
type PostFormMode int

const (
	PostFormHidden PostFormMode = iota
	PostFormCreating
	PostFormEditing
)

func (m PostFormMode) String() string {
	switch m {
	case PostFormHidden:
		return "hidden"
	case PostFormCreating:
		return "creating"
	case PostFormEditing:
		return "editing"
	default:
		return fmt.Sprintf("PostFormMode(%d)", int(m))
	}
}

// PostForm is the post editor. EditingID is set only in PostFormEditing.
type PostForm struct {
	Mode      PostFormMode
	EditingID string
	Title     string
	Content   string
	Author    string
	Category  string
	ImageURL  string
	Published bool
	Error     string
}

func defaultPostForm(mode PostFormMode) PostForm {
	return PostForm{Mode: mode, Author: client.DefaultAuthor, Published: true}
}

// Confirmer asks the operator to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AdminPanel is the admin shell: tab switching, the two lists and the post
// editor. Switching tabs keeps both lists loaded.
type AdminPanel struct {
	mu      sync.Mutex
	backend Backend
	confirm Confirmer
	tab     Tab
	form    PostForm
	status  string // inquiry status filter, "" for all
	errMsg  string

	Guard     *Guard
	Inquiries *ListView[client.Inquiry]
	Posts     *ListView[client.Post]
}

// NewAdminPanel creates a panel. confirm may be nil, in which case every
// delete is declined.
func NewAdminPanel(backend Backend, confirm Confirmer) *AdminPanel {
	p := &AdminPanel{backend: backend, confirm: confirm, form: defaultPostForm(PostFormHidden)}
	p.Inquiries = NewListView(AdminPageSize, func(ctx context.Context, page, size int) (*client.Page[client.Inquiry], error) {
		res, err := backend.FetchInquiries(ctx, p.Guard.Session(), client.InquiryPageRequest{Page: page, Size: size, Status: p.statusFilter()})
		p.checkAuth(err)
		return res, err
	})
	p.Posts = NewListView(AdminPageSize, func(ctx context.Context, page, size int) (*client.Page[client.Post], error) {
		res, err := backend.FetchAllPosts(ctx, p.Guard.Session(), client.PageRequest{Page: page, Size: size})
		p.checkAuth(err)
		return res, err
	})
	p.Guard = NewGuard(backend, p.Inquiries, p.Posts)
	return p
}

// checkAuth signs the panel out when the server rejected the session.
func (p *AdminPanel) checkAuth(err error) {
	if errors.Is(err, client.ErrAuth) {
		p.Guard.Expire()
	}
}

// Tab returns the visible tab.
func (p *AdminPanel) Tab() Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// SwitchTab shows t. Loaded data of both tabs is kept.
func (p *AdminPanel) SwitchTab(t Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = t
}

func (p *AdminPanel) statusFilter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// FilterInquiries shows only inquiries with status ("" for all) from page 0.
func (p *AdminPanel) FilterInquiries(ctx context.Context, status string) error {
	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
	return p.Inquiries.Load(ctx, 0)
}

// Error returns the message of the last failed panel action.
func (p *AdminPanel) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

func (p *AdminPanel) setError(err error, fallback string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		p.errMsg = ""
		return
	}
	p.errMsg = client.Message(err, fallback)
}

// ChangeInquiryStatus updates one inquiry and reloads the current page.
func (p *AdminPanel) ChangeInquiryStatus(ctx context.Context, id, status string) error {
	if _, err := p.backend.UpdateInquiryStatus(ctx, p.Guard.Session(), id, status); err != nil {
		p.checkAuth(err)
		p.setError(err, "상태 변경에 실패했습니다.")
		return err
	}
	p.setError(nil, "")
	return p.Inquiries.Reload(ctx)
}

// PostForm returns a snapshot of the post editor.
func (p *AdminPanel) PostForm() PostForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// NewPost opens the editor with default values.
func (p *AdminPanel) NewPost() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = defaultPostForm(PostFormCreating)
}

// EditPost opens the editor pre-filled from post.
func (p *AdminPanel) EditPost(post client.Post) {
	p.mu.Lock()
	defer p.mu.Unlock()
	author := post.Author
	if author == "" {
		author = client.DefaultAuthor
	}
	p.form = PostForm{
		Mode:      PostFormEditing,
		EditingID: post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    author,
		Category:  post.Category,
		ImageURL:  post.ImageURL,
		Published: post.Published,
	}
}

// UpdatePostForm edits the open form in place. Mode and EditingID are kept.
func (p *AdminPanel) UpdatePostForm(fn func(*PostForm)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.form.Mode == PostFormHidden {
		return
	}
	mode, id := p.form.Mode, p.form.EditingID
	fn(&p.form)
	p.form.Mode, p.form.EditingID = mode, id
}

// CancelPost closes the editor without saving.
func (p *AdminPanel) CancelPost() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = defaultPostForm(PostFormHidden)
}

// AttachImage uploads an image and stores its URL in the open form.
func (p *AdminPanel) AttachImage(ctx context.Context, filename string, r io.Reader) (*client.UploadedImage, error) {
	if p.PostForm().Mode == PostFormHidden {
		return nil, errors.New("console: no post form open")
	}
	img, err := p.backend.UploadImage(ctx, p.Guard.Session(), filename, r)
	if err != nil {
		p.checkAuth(err)
		p.mu.Lock()
		p.form.Error = client.Message(err, "이미지 업로드에 실패했습니다.")
		p.mu.Unlock()
		return nil, err
	}
	p.mu.Lock()
	p.form.ImageURL = img.URL
	p.form.Error = ""
	p.mu.Unlock()
	return img, nil
}

// SubmitPost creates or updates the post in the editor, closes the editor and
// reloads the current posts page. On failure the editor stays open.
func (p *AdminPanel) SubmitPost(ctx context.Context) error {
	form := p.PostForm()
	published := form.Published
	in := client.PostInput{
		Title:     strings.TrimSpace(form.Title),
		Content:   form.Content,
		Author:    form.Author,
		Category:  form.Category,
		ImageURL:  form.ImageURL,
		Published: &published,
	}

	var err error
	switch form.Mode {
	case PostFormCreating:
		_, err = p.backend.CreatePost(ctx, p.Guard.Session(), in)
	case PostFormEditing:
		_, err = p.backend.UpdatePost(ctx, p.Guard.Session(), form.EditingID, in)
	default:
		return errors.New("console: no post form open")
	}
	if err != nil {
		p.checkAuth(err)
		p.mu.Lock()
		p.form.Error = client.Message(err, "게시글 저장에 실패했습니다.")
		p.mu.Unlock()
		return err
	}

	p.CancelPost()
	return p.Posts.Reload(ctx)
}

// DeletePost deletes a post once the operator confirms, then reloads the
// current posts page. An empty page afterwards is not an error.
func (p *AdminPanel) DeletePost(ctx context.Context, id string) error {
	if p.confirm == nil || !p.confirm.Confirm(DeletePrompt) {
		return ErrCancelled
	}
	if err := p.backend.DeletePost(ctx, p.Guard.Session(), id); err != nil {
		p.checkAuth(err)
		p.setError(err, "게시글 삭제에 실패했습니다.")
		return err
	}
	p.setError(nil, "")
	return p.Posts.Reload(ctx)
}
