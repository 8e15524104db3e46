package domain

import "math"

// DefaultPageSize matches the portal listing size.
const DefaultPageSize = 80

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func NewPage(number int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: DefaultPageSize}
}

func (p Page) Limit() int32 {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	if p.Size > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(p.Size)
}

// Offset saturates at math.MaxInt32, which lands past the last row.
func (p Page) Offset() int32 {
	if p.Number < 1 {
		return 0
	}
	limit := int64(p.Limit())
	if int64(p.Number-1) > math.MaxInt32/limit {
		return math.MaxInt32
	}
	return int32(int64(p.Number-1) * limit)
}
