package offer

import (
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	tokenSize     = 6
	fallbackSlug  = "offert"
)

// newSlug derives an offer slug: the slugified title plus a random
// six-character lowercase alphanumeric token.
func newSlug(title string, token func() (string, error)) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fallbackSlug
	}
	t, err := token()
	if err != nil {
		return "", err
	}
	return base + "-" + t, nil
}

func randomToken() (string, error) {
	return gonanoid.Generate(tokenAlphabet, tokenSize)
}
