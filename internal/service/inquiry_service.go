package service

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/notify"
	"github.com/deepinsight/backend/internal/repository"
)

const (
	maxNameLength    = 100
	maxMessageLength = 5000
	notifyTimeout    = 10 * time.Second
)

// InquiryService defines the business logic for consultation requests.
type InquiryService interface {
	// Submit validates and stores a new inquiry. Status and CreatedAt are
	// always set by the service, whatever the caller passed.
	Submit(ctx context.Context, inq *model.Inquiry) error
	List(ctx context.Context, opts model.InquiryListOptions) (model.Page[*model.Inquiry], error)
	// UpdateStatus changes the status and returns the stored inquiry.
	UpdateStatus(ctx context.Context, id, status string) (*model.Inquiry, error)
}

type inquiryServiceImpl struct {
	repo     repository.InquiryRepository
	notifier notify.Notifier
	now      func() time.Time
	// async runs the notification; tests replace it to run inline.
	async func(func())
}

// NewInquiryService creates an InquiryService. notifier may be nil.
func NewInquiryService(repo repository.InquiryRepository, notifier notify.Notifier) InquiryService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &inquiryServiceImpl{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		async:    func(f func()) { go f() },
	}
}

func (s *inquiryServiceImpl) Submit(ctx context.Context, inq *model.Inquiry) error {
	if err := normalizeInquiry(inq); err != nil {
		return err
	}
	inq.Status = model.InquiryStatusPending
	inq.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, inq); err != nil {
		return err
	}
	slog.Info("inquiry submitted", "inquiry_id", inq.ID, "service_types", inq.ServiceType)

	snapshot := *inq
	s.async(func() {
		nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.InquiryReceived(nctx, &snapshot); err != nil {
			slog.Warn("inquiry notification failed", "inquiry_id", snapshot.ID, "error", err)
		}
	})
	return nil
}

func (s *inquiryServiceImpl) List(ctx context.Context, opts model.InquiryListOptions) (model.Page[*model.Inquiry], error) {
	page, size, err := normalizePage(opts.Page, opts.Size, DefaultInquiryPageSize)
	if err != nil {
		return model.Page[*model.Inquiry]{}, err
	}
	if opts.Status != "" && opts.Status != "all" && !model.IsInquiryStatus(opts.Status) {
		return model.Page[*model.Inquiry]{}, invalid("status", "알 수 없는 상태입니다.")
	}
	opts.Page, opts.Size = page, size

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return model.Page[*model.Inquiry]{}, err
	}
	return model.NewPage(items, total, page, size), nil
}

func (s *inquiryServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	if !model.IsInquiryStatus(status) {
		return nil, invalid("status", "상태는 pending, in_progress, completed 중 하나여야 합니다.")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	slog.Info("inquiry status changed", "inquiry_id", id, "status", status)
	return s.repo.GetByID(ctx, id)
}

// normalizeInquiry trims fields, validates them and collapses duplicate tags.
func normalizeInquiry(inq *model.Inquiry) error {
	inq.Name = strings.TrimSpace(inq.Name)
	inq.Email = strings.TrimSpace(inq.Email)
	inq.Company = strings.TrimSpace(inq.Company)
	inq.Phone = strings.TrimSpace(inq.Phone)
	inq.Message = strings.TrimSpace(inq.Message)

	if inq.Name == "" {
		return invalid("name", "이름을 입력해 주세요.")
	}
	if len([]rune(inq.Name)) > maxNameLength {
		return invalid("name", "이름이 너무 깁니다.")
	}
	if inq.Email == "" {
		return invalid("email", "이메일을 입력해 주세요.")
	}
	if addr, err := mail.ParseAddress(inq.Email); err != nil || addr.Address != inq.Email {
		return invalid("email", "올바른 이메일 형식이 아닙니다.")
	}
	if inq.Message == "" {
		return invalid("message", "문의 내용을 입력해 주세요.")
	}
	if len([]rune(inq.Message)) > maxMessageLength {
		return invalid("message", "문의 내용은 5000자 이하로 입력해 주세요.")
	}

	seen := make(map[string]bool, len(inq.ServiceType))
	types := make([]string, 0, len(inq.ServiceType))
	for _, t := range inq.ServiceType {
		t = strings.TrimSpace(t)
		if !model.IsServiceType(t) {
			return invalid("serviceType", "알 수 없는 서비스 유형입니다: "+t)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	if len(types) == 0 {
		return invalid("serviceType", "서비스 유형을 하나 이상 선택해 주세요.")
	}
	inq.ServiceType = types
	return nil
}
