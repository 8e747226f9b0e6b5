package service

const (
	// DefaultPostPageSize is used when a post listing omits size.
	DefaultPostPageSize = 10
	// DefaultInquiryPageSize is used when an inquiry listing omits size.
	DefaultInquiryPageSize = 20
	// MaxPageSize caps every listing.
	MaxPageSize = 100
	// RecentPostLimit is the number of posts returned by the recent listing.
	RecentPostLimit = 5
)

// normalizePage applies defaults and bounds to a page request.
func normalizePage(page, size, defaultSize int) (int, int, error) {
	if page < 0 {
		return 0, 0, invalid("page", "페이지 번호는 0 이상이어야 합니다.")
	}
	if size < 0 {
		return 0, 0, invalid("size", "페이지 크기는 0보다 커야 합니다.")
	}
	if size == 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, nil
}
