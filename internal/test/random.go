package test

import "math/rand/v2"

const usernameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns an alphanumeric string of length in [minLen, maxLen].
// The result is always a valid username and satisfies the password length rule when minLen >= 8.
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	buf := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range buf {
		buf[i] = usernameAlphabet[rand.IntN(len(usernameAlphabet))]
	}
	return string(buf)
}
