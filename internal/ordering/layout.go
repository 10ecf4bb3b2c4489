package ordering

type Layout string

const (
	LayoutWide  Layout = "wide"
	LayoutSmall Layout = "small"
)

const wideEvery = 5

// LayoutOf maps a post's 0-based rank in the displayed sequence to its display
// variant: the first post and every fifth one after it render wide, the rest
// small. Rank is recomputed per listing and never persisted.
func LayoutOf(rank int) Layout {
	if rank < 0 {
		return LayoutSmall
	}
	if rank%wideEvery == 0 {
		return LayoutWide
	}
	return LayoutSmall
}
