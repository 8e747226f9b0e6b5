package handler

import (
	"bufio"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/deepinsight/backend/internal/storage"
	"github.com/google/uuid"
)

const (
	maxImageSize  = 5 << 20 // 5 MB
	uploadsPrefix = "/uploads"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler はポスト画像のアップロードを処理する
type UploadHandler struct {
	storage storage.Storage
	now     func() time.Time
}

// NewUploadHandler は UploadHandler を生成する
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store, now: time.Now}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload は POST /api/admin/upload を処理する
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "file_too_large", "이미지는 5MB 이하만 업로드할 수 있습니다.")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_multipart", "업로드 형식이 올바르지 않습니다.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile("image")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "file_required", "업로드할 파일을 선택해 주세요.")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusBadRequest, "file_too_large", "이미지는 5MB 이하만 업로드할 수 있습니다.")
		return
	}

	// Trust the bytes, not the client supplied Content-Type.
	br := bufio.NewReaderSize(file, 512)
	head, _ := br.Peek(512)
	ct := http.DetectContentType(head)
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type", "JPEG, PNG, WEBP, GIF 이미지만 업로드할 수 있습니다.")
		return
	}

	key := path.Join("images", h.now().UTC().Format("2006/01"), uuid.NewString()+ext)
	url, err := h.storage.Save(r.Context(), key, br, ct)
	if err != nil {
		slog.Error("image upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "upload_failed", "이미지 업로드에 실패했습니다.")
		return
	}
	slog.Info("image uploaded", "key", key, "size", header.Size, "content_type", ct)
	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}
