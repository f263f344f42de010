package suite

import "math/rand"

// cities are the canonical search targets used across the suite.
var cities = []string{
	"London",
	"New York",
	"Tokyo",
	"Paris",
	"Berlin",
	"Sydney",
	"Moscow",
	"Mumbai",
	"Cairo",
	"Rio de Janeiro",
}

// smokeCities is the subset hit by fast smoke checks.
var smokeCities = []string{"London", "Paris", "Tokyo", "New York"}

const randomLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomString generates a city name that cannot exist, for negative checks.
func randomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = randomLetters[rand.Intn(len(randomLetters))]
	}
	return string(b)
}
