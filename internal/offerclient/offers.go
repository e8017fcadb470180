package offerclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"offerboard/internal/domain"
)

type OfferList struct {
	Offerts []domain.Offer `json:"offerts"`
	Count   int            `json:"count"`
}

type Favorites struct {
	Offerts []domain.Offer `json:"offerts"`
}

// Filters selects offers on the filter endpoint. Only non-empty fields are
// sent.
type Filters struct {
	Category  string
	Company   string
	SalaryMin *int64
	SalaryMax *int64
}

// Offers wraps the /offerts endpoints.
type Offers struct {
	c *Client
}

func (c *Client) Offers() *Offers {
	return &Offers{c: c}
}

func emptyList() OfferList {
	return OfferList{Offerts: []domain.Offer{}}
}

// ListAll fetches a page of offers. params is passed through as the query
// string (limit, offset, title).
func (s *Offers) ListAll(ctx context.Context, params url.Values) Result[OfferList] {
	var out OfferList
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/offerts", query: params}, &out); err != nil {
		return fail(s.c, "list offerts", emptyList(), err)
	}
	if out.Offerts == nil {
		out.Offerts = []domain.Offer{}
	}
	return Result[OfferList]{Value: out}
}

// SearchByTitle decodes a base64 search term and lists offers whose title
// contains it. An empty term lists everything.
func (s *Offers) SearchByTitle(ctx context.Context, encoded string) Result[OfferList] {
	if encoded == "" {
		return s.ListAll(ctx, nil)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fail(s.c, "search offerts", emptyList(), fmt.Errorf("decode search term: %w", err))
	}
	return s.ListAll(ctx, url.Values{"title": {strings.TrimSpace(string(raw))}})
}

func (s *Offers) GetBySlug(ctx context.Context, slug string) Result[*domain.Offer] {
	var out domain.Offer
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/offerts/" + url.PathEscape(slug)}, &out); err != nil {
		return fail[*domain.Offer](s.c, "get offert", nil, err)
	}
	return Result[*domain.Offer]{Value: &out}
}

// Filter queries the filter endpoint. The API answers with a bare array,
// which is wrapped into an OfferList whose Count is its length.
func (s *Offers) Filter(ctx context.Context, f Filters) Result[OfferList] {
	var offers []domain.Offer
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/offerts/filter", query: filterParams(f)}, &offers); err != nil {
		return fail(s.c, "filter offerts", emptyList(), err)
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	return Result[OfferList]{Value: OfferList{Offerts: offers, Count: len(offers)}}
}

func (s *Offers) Favorite(ctx context.Context, slug string) Result[*domain.Offer] {
	var out domain.Offer
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/offerts/" + url.PathEscape(slug) + "/favorite", auth: true}, &out); err != nil {
		return fail[*domain.Offer](s.c, "favorite offert", nil, err)
	}
	return Result[*domain.Offer]{Value: &out}
}

func (s *Offers) Unfavorite(ctx context.Context, slug string) Result[*domain.Offer] {
	var out domain.Offer
	if err := s.c.do(ctx, request{method: http.MethodDelete, path: "/offerts/" + url.PathEscape(slug) + "/favorite", auth: true}, &out); err != nil {
		return fail[*domain.Offer](s.c, "unfavorite offert", nil, err)
	}
	return Result[*domain.Offer]{Value: &out}
}

// UserFavorites fetches the caller's favorites. The API exposes this read
// as a POST.
func (s *Offers) UserFavorites(ctx context.Context) Result[Favorites] {
	var out Favorites
	if err := s.c.do(ctx, request{method: http.MethodPost, path: "/offerts/favorites", auth: true}, &out); err != nil {
		return fail(s.c, "user favorites", Favorites{Offerts: []domain.Offer{}}, err)
	}
	if out.Offerts == nil {
		out.Offerts = []domain.Offer{}
	}
	return Result[Favorites]{Value: out}
}

func filterParams(f Filters) url.Values {
	params := url.Values{}
	if f.Category != "" {
		params.Set("categorySlug", f.Category)
	}
	if f.Company != "" {
		params.Set("companySlug", f.Company)
	}
	if f.SalaryMin != nil {
		params.Set("salaryMin", strconv.FormatInt(*f.SalaryMin, 10))
	}
	if f.SalaryMax != nil {
		params.Set("salaryMax", strconv.FormatInt(*f.SalaryMax, 10))
	}
	return params
}
