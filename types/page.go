package types

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is a zero based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page into the accepted range.
func (p Page) Normalize() Page {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return n.Page * n.Limit
}

// Window returns the [start, end) slice bounds of this page within total items.
func (p Page) Window(total int) (int, int) {
	n := p.Normalize()
	start := n.Page * n.Limit
	if start > total {
		start = total
	}
	end := start + n.Limit
	if end > total {
		end = total
	}
	return start, end
}
