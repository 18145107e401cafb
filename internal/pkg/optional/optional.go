package optional

// Coalesce returns the value ptr points to, or fallback when ptr is nil.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

func Of[T any](v T) *T {
	return &v
}
