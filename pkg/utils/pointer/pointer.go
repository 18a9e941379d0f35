package pointer

// Ref returns a pointer to a copy of t.
//
// It is handy for optional fields of patch payloads.
func Ref[T any](t T) *T {
	return &t
}

// Or returns *ptr, or fallback when ptr is nil.
func Or[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
