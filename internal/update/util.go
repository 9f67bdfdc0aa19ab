package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
