package domain

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage applies the listing defaults: a non-positive limit becomes
// DefaultPageLimit, limits above MaxPageLimit are capped and negative offsets
// start from zero.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
