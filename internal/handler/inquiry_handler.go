package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/deepinsight/backend/internal/model"
	"github.com/deepinsight/backend/internal/service"
)

// InquiryHandler handles the public inquiry form and the admin inquiry views.
type InquiryHandler struct {
	inquiryService service.InquiryService
}

// NewInquiryHandler creates an InquiryHandler with the given service.
func NewInquiryHandler(inquiryService service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = stringList{one}
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

// submitInquiryRequest is the expected JSON body for POST /api/inquiries.
// status is accepted but ignored.
type submitInquiryRequest struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Company      string     `json:"company"`
	CompanyName  string     `json:"companyName"`
	Phone        string     `json:"phone"`
	Message      string     `json:"message"`
	ServiceType  stringList `json:"serviceType"`
	ServiceTypes stringList `json:"serviceTypes"`
	Status       string     `json:"status"`
}

// Submit handles POST /api/inquiries.
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitInquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company := req.Company
	if company == "" {
		company = req.CompanyName
	}
	types := req.ServiceType
	if len(types) == 0 {
		types = req.ServiceTypes
	}

	inq := &model.Inquiry{
		Name:        req.Name,
		Email:       req.Email,
		Company:     company,
		Phone:       req.Phone,
		Message:     req.Message,
		ServiceType: types,
	}
	if err := h.inquiryService.Submit(r.Context(), inq); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inq)
}

// AdminList handles GET /api/admin/inquiries?page&size&status.
func (h *InquiryHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, size, ok := pageParams(w, r)
	if !ok {
		return
	}
	result, err := h.inquiryService.List(r.Context(), model.InquiryListOptions{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/admin/inquiries/{id}.
func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inq, err := h.inquiryService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inq)
}
