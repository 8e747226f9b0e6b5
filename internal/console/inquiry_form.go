package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deepinsight/backend/pkg/client"
)

// DefaultResetDelay is how long the form shows success before it resets.
const DefaultResetDelay = 2 * time.Second

const msgSubmitFailed = "문의 전송에 실패했습니다. 다시 시도해주세요."

// FormStatus is the submission state of an InquiryForm.
type FormStatus int

const (
	FormIdle FormStatus = iota
	FormLoading
	FormSuccess
	FormError
)

func (s FormStatus) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormLoading:
		return "loading"
	case FormSuccess:
		return "success"
	case FormError:
		return "error"
	default:
		return fmt.Sprintf("FormStatus(%d)", int(s))
	}
}

// InquiryFields are the free-text fields of the form.
type InquiryFields struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

// FormState is a snapshot of an InquiryForm.
type FormState struct {
	Fields   InquiryFields
	Selected []string
	Status   FormStatus
	Error    string
	// Submitted is the inquiry stored by the last successful submit.
	Submitted *client.Inquiry
}

// FormOption configures an InquiryForm.
type FormOption func(*InquiryForm)

// WithResetDelay sets how long success is shown before the form resets.
func WithResetDelay(d time.Duration) FormOption {
	return func(f *InquiryForm) { f.resetDelay = d }
}

// WithOnClose sets the callback run after a successful submit resets the form.
func WithOnClose(fn func()) FormOption {
	return func(f *InquiryForm) { f.onClose = fn }
}

// InquiryForm is the public inquiry form.
type InquiryForm struct {
	mu         sync.Mutex
	backend    InquirySubmitter
	resetDelay time.Duration
	onClose    func()
	state      FormState
	timer      *time.Timer
}

// NewInquiryForm creates an idle, empty form.
func NewInquiryForm(backend InquirySubmitter, opts ...FormOption) *InquiryForm {
	f := &InquiryForm{backend: backend, resetDelay: DefaultResetDelay}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetFields replaces the free-text fields.
func (f *InquiryForm) SetFields(fields InquiryFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Fields = fields
}

// Update changes the free-text fields in place.
func (f *InquiryForm) Update(fn func(*InquiryFields)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state.Fields)
}

// Toggle selects tag, or removes it when already selected.
func (f *InquiryForm) Toggle(tag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.state.Selected {
		if t == tag {
			f.state.Selected = append(f.state.Selected[:i:i], f.state.Selected[i+1:]...)
			return
		}
	}
	f.state.Selected = append(f.state.Selected, tag)
}

// IsSelected reports whether tag is selected.
func (f *InquiryForm) IsSelected(tag string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.state.Selected {
		if t == tag {
			return true
		}
	}
	return false
}

// Valid reports whether the form holds every required value.
func (f *InquiryForm) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validLocked()
}

func (f *InquiryForm) validLocked() bool {
	fl := f.state.Fields
	return len(f.state.Selected) > 0 && fl.Name != "" && fl.Email != "" && fl.Message != ""
}

// CanSubmit reports whether Submit would send the form.
func (f *InquiryForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmitLocked()
}

func (f *InquiryForm) canSubmitLocked() bool {
	return f.validLocked() && f.state.Status != FormLoading && f.state.Status != FormSuccess
}

// Submit sends the form. It does nothing while the form is invalid, loading
// or showing success. Fields are kept on error.
func (f *InquiryForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.canSubmitLocked() {
		f.mu.Unlock()
		return nil
	}
	f.state.Status = FormLoading
	f.state.Error = ""
	fl := f.state.Fields
	in := client.InquiryInput{
		Name:         fl.Name,
		Email:        fl.Email,
		Company:      fl.Company,
		Phone:        fl.Phone,
		Message:      fl.Message,
		ServiceTypes: append([]string(nil), f.state.Selected...),
	}
	f.mu.Unlock()

	inq, err := f.backend.SubmitInquiry(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state.Status = FormError
		f.state.Error = client.Message(err, msgSubmitFailed)
		return err
	}
	f.state.Status = FormSuccess
	f.state.Submitted = inq
	f.timer = time.AfterFunc(f.resetDelay, f.finishSuccess)
	return nil
}

func (f *InquiryForm) finishSuccess() {
	f.mu.Lock()
	if f.state.Status != FormSuccess {
		f.mu.Unlock()
		return
	}
	f.state = FormState{Submitted: f.state.Submitted}
	f.timer = nil
	onClose := f.onClose
	f.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Reset clears the form at once and cancels a pending success reset.
func (f *InquiryForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.state = FormState{}
}

// State returns a snapshot of the form.
func (f *InquiryForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.state
	st.Selected = append([]string(nil), f.state.Selected...)
	return st
}
