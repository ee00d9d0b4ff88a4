package utils

// Must returns v, or panics with err. Use it only where failure means misconfiguration.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
