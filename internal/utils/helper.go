package utils

// OptionalStr returns nil for an empty string.
func OptionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Int64Ptr(v int64) *int64 {
	return &v
}
