// Package notify delivers operator notifications about new inquiries.
package notify

import (
	"context"

	"github.com/deepinsight/backend/internal/model"
)

// Notifier is told about every inquiry after it has been stored.
type Notifier interface {
	InquiryReceived(ctx context.Context, inq *model.Inquiry) error
}

// Nop discards notifications. It is used when SMTP is not configured.
type Nop struct{}

func (Nop) InquiryReceived(context.Context, *model.Inquiry) error { return nil }
