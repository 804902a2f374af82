package entity

const (
	MaxPageLimit     = 50
	DefaultPageLimit = 20
)

type PaginationInput struct {
	Limit  int
	Offset int
}

// NewPaginationInput clamps the raw query values to sane bounds.
func NewPaginationInput(limit int, offset int) *PaginationInput {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}

	if offset < 0 {
		offset = 0
	}

	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}
