package model

import "time"

// Inquiry statuses.
const (
	InquiryStatusPending    = "pending"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusCompleted  = "completed"
)

// Service types offered on the inquiry form.
const (
	ServiceCloudRAG   = "CLOUD_RAG"
	ServiceDevOps     = "DEVOPS"
	ServiceAIOps      = "AIOPS"
	ServiceMLOps      = "MLOPS"
	ServiceCloudInfra = "CLOUD_INFRA"
	ServiceOther      = "OTHER"
)

// ServiceTypes lists every service type in display order.
var ServiceTypes = []string{
	ServiceCloudRAG,
	ServiceDevOps,
	ServiceAIOps,
	ServiceMLOps,
	ServiceCloudInfra,
	ServiceOther,
}

var serviceTypeLabels = map[string]string{
	ServiceCloudRAG:   "클라우드 RAG 구축",
	ServiceDevOps:     "데브옵스",
	ServiceAIOps:      "AI옵스",
	ServiceMLOps:      "ML옵스",
	ServiceCloudInfra: "클라우드 인프라",
	ServiceOther:      "기타",
}

// ServiceTypeLabel returns the human readable label of a service type.
// Unknown values are returned unchanged.
func ServiceTypeLabel(t string) string {
	if l, ok := serviceTypeLabels[t]; ok {
		return l
	}
	return t
}

// IsServiceType reports whether t is a known service type.
func IsServiceType(t string) bool {
	_, ok := serviceTypeLabels[t]
	return ok
}

// IsInquiryStatus reports whether s is a valid inquiry status.
func IsInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusInProgress, InquiryStatusCompleted:
		return true
	}
	return false
}

// Inquiry is a consultation request submitted through the public form.
type Inquiry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	ServiceType []string  `json:"serviceType"`
	Status      string    `json:"status"` // "pending" | "in_progress" | "completed"
	CreatedAt   time.Time `json:"createdAt"`
}

// InquiryListOptions carries filter and pagination parameters for listing inquiries.
type InquiryListOptions struct {
	// Status filters by inquiry status. Empty string and "all" return every inquiry.
	Status string
	Page   int
	Size   int
}
