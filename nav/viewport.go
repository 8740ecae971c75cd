package nav

// MaxScroll is the largest offset that still fills a viewport of height
// lines. A non-positive height shows nothing and never scrolls.
func MaxScroll(length int, height int) int {
	if height <= 0 {
		return 0
	}
	return max(0, length-height)
}

// Reconcile returns the offset that keeps cursor visible in a window of
// height lines over length lines, moving as little as possible.
func Reconcile(cursor int, length int, height int, offset int) int {
	if height <= 0 {
		return 0
	}
	next := offset
	switch {
	case cursor < offset:
		next = cursor
	case cursor >= offset+height:
		next = cursor - height + 1
	}
	return clamp(next, 0, MaxScroll(length, height))
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
