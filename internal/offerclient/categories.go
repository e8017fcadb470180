package offerclient

import (
	"context"
	"net/http"
	"net/url"

	"offerboard/internal/domain"
)

type CategoryList struct {
	Categorys []domain.Category `json:"categorys"`
	Count     int               `json:"count"`
}

type Categories struct {
	c *Client
}

func (c *Client) Categories() *Categories {
	return &Categories{c: c}
}

func (s *Categories) ListAll(ctx context.Context, params url.Values) Result[CategoryList] {
	var out CategoryList
	if err := s.c.do(ctx, request{method: http.MethodGet, path: "/categorys", query: params}, &out); err != nil {
		return fail(s.c, "list categorys", CategoryList{Categorys: []domain.Category{}}, err)
	}
	if out.Categorys == nil {
		out.Categorys = []domain.Category{}
	}
	return Result[CategoryList]{Value: out}
}
