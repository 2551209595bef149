package slice

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func Contains[T comparable](s []T, value T) bool {
	for _, a := range s {
		if a == value {
			return true
		}
	}
	return false
}

// Distinct returns the values of s without consecutive repetitions
func Distinct[T comparable](s []T) []T {
	result := make([]T, 0, len(s))
	for i, v := range s {
		if i == 0 || s[i-1] != v {
			result = append(result, v)
		}
	}
	return result
}
