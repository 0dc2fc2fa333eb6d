package layout

// Ellipsis is appended to labels cut by Truncate.
const Ellipsis = "..."

// Truncate shortens s to max characters followed by an ellipsis.
// max <= 0 returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + Ellipsis
}
