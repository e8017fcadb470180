package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"offerboard/internal/domain"
	offerrepo "offerboard/internal/repository/offer"
	offersvc "offerboard/internal/service/offer"

	"github.com/gin-gonic/gin"
)

type memOfferRepo struct {
	offers []domain.Offer
}

func (m *memOfferRepo) Create(_ context.Context, o domain.Offer) (*domain.Offer, error) {
	for _, existing := range m.offers {
		if existing.Slug == o.Slug {
			return nil, domain.ErrAlreadyExists
		}
	}
	o.ID = "id-" + o.Slug
	m.offers = append(m.offers, o)
	return &o, nil
}

func (m *memOfferRepo) List(_ context.Context, title string, limit, offset int) ([]domain.Offer, int, error) {
	matched := []domain.Offer{}
	for _, o := range m.offers {
		if strings.Contains(strings.ToLower(o.Title), strings.ToLower(title)) {
			matched = append(matched, o)
		}
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memOfferRepo) GetBySlug(_ context.Context, slug string) (*domain.Offer, error) {
	for _, o := range m.offers {
		if o.Slug == slug {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOfferRepo) Update(_ context.Context, o domain.Offer) (*domain.Offer, error) {
	for i := range m.offers {
		if m.offers[i].Slug == o.Slug {
			m.offers[i] = o
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOfferRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, o := range m.offers {
		if o.Slug == slug {
			m.offers = append(m.offers[:i], m.offers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memOfferRepo) Filter(_ context.Context, q offerrepo.FilterQuery) ([]domain.Offer, error) {
	out := []domain.Offer{}
	for _, o := range m.offers {
		if q.CategoryID != "" && o.CategoryID != q.CategoryID {
			continue
		}
		if q.CompanySlug != "" && o.CompanySlug != q.CompanySlug {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type stubCategoryLookup struct{}

func (stubCategoryLookup) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	if slug == "engineering" {
		return &domain.Category{ID: "cat-eng", Slug: "engineering", Name: "Engineering"}, nil
	}
	return nil, domain.ErrNotFound
}

type stubEnterpriseLookup struct{}

func (stubEnterpriseLookup) GetByName(_ context.Context, name string) (*domain.Enterprise, error) {
	if name == "Acme" {
		return &domain.Enterprise{ID: "ent-acme", Slug: "acme", Name: "Acme"}, nil
	}
	return nil, domain.ErrNotFound
}

type stubCategoryService struct {
	items []domain.Category
	err   error
}

func (s *stubCategoryService) List(_ context.Context, _, _ int) ([]domain.Category, int, error) {
	return s.items, len(s.items), s.err
}

type stubEnterpriseService struct {
	items []domain.Enterprise
}

func (s *stubEnterpriseService) List(_ context.Context, _, _ int) ([]domain.Enterprise, int, error) {
	return s.items, len(s.items), nil
}

type failingOfferService struct {
	OfferService
	err error
}

func (f *failingOfferService) Filter(_ context.Context, _ domain.OfferFilter) ([]domain.Offer, error) {
	return nil, f.err
}

func (f *failingOfferService) List(_ context.Context, _ string, _, _ int) ([]domain.Offer, int, error) {
	return nil, 0, f.err
}

func newTestRouter(t *testing.T) (*gin.Engine, *memOfferRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := &memOfferRepo{}
	router, err := buildRouter(nil, nil, Deps{
		OfferSvc:      offersvc.New(repo, stubCategoryLookup{}, stubEnterpriseLookup{}, nil),
		CategorySvc:   &stubCategoryService{items: []domain.Category{{ID: "cat-eng", Slug: "engineering", Name: "Engineering"}}},
		EnterpriseSvc: &stubEnterpriseService{items: []domain.Enterprise{{ID: "ent-acme", Slug: "acme", Name: "Acme"}}},
	}, []string{"http://localhost:4200"})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router, repo
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"title":"Backend Engineer","company":"Acme","location":"Valencia","salary":42000,"categorySlug":"engineering"}`

func TestCreateOffer_CreatedThenFetched(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/offerts", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created domain.Offer
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !regexp.MustCompile(`^backend-engineer-[a-z0-9]{6}$`).MatchString(created.Slug) {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if created.CompanySlug != "acme" || created.CategorySlug != "engineering" {
		t.Fatalf("unexpected references %+v", created)
	}

	rec = do(router, http.MethodGet, "/offerts/"+created.Slug, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fetched domain.Offer
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fetched.ID != created.ID || fetched.Slug != created.Slug {
		t.Fatalf("fetched %+v, want %+v", fetched, created)
	}
}

func TestCreateOffer_UnknownCategory(t *testing.T) {
	router, repo := newTestRouter(t)
	body := strings.Replace(createBody, "engineering", "cooking", 1)

	rec := do(router, http.MethodPost, "/offerts", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "category not found") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if len(repo.offers) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreateOffer_UnknownEnterprise(t *testing.T) {
	router, _ := newTestRouter(t)
	body := strings.Replace(createBody, "Acme", "Initech", 1)

	rec := do(router, http.MethodPost, "/offerts", body)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "enterprise not found") {
		t.Fatalf("expected 400 enterprise not found, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateOffer_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(router, http.MethodPost, "/offerts", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListOffers_FilterAndCount(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, title := range []string{"Backend Engineer", "Frontend Engineer", "Designer"} {
		body := strings.Replace(createBody, "Backend Engineer", title, 1)
		if rec := do(router, http.MethodPost, "/offerts", body); rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", title, rec.Code)
		}
	}

	rec := do(router, http.MethodGet, "/offerts?title=ENG&limit=1&offset=0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp offerListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Offerts) != 1 {
		t.Fatalf("expected 1 of 2, got %d of %d", len(resp.Offerts), resp.Count)
	}

	rec = do(router, http.MethodGet, "/offerts?limit=abc", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 3 || len(resp.Offerts) != 3 {
		t.Fatalf("expected default page of 3, got %d of %d", len(resp.Offerts), resp.Count)
	}
}

func TestListOffers_EmptyIsArray(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(router, http.MethodGet, "/offerts", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"offerts":[]`) {
		t.Fatalf("expected empty array, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetOffer_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := do(router, http.MethodGet, "/offerts/nope-000000", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteOffer_SecondDeleteIsNotFound(t *testing.T) {
	router, repo := newTestRouter(t)
	if rec := do(router, http.MethodPost, "/offerts", createBody); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	slug := repo.offers[0].Slug

	if rec := do(router, http.MethodDelete, "/offerts/"+slug, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for i := 0; i < 2; i++ {
		if rec := do(router, http.MethodDelete, "/offerts/"+slug, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on repeat delete, got %d", rec.Code)
		}
	}
}

func TestUpdateOffer(t *testing.T) {
	router, repo := newTestRouter(t)
	if rec := do(router, http.MethodPost, "/offerts", createBody); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	slug := repo.offers[0].Slug

	rec := do(router, http.MethodPut, "/offerts/"+slug, `{"salary":50000,"location":"Remote"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var updated domain.Offer
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.Slug != slug || updated.Salary != 50000 || updated.Location != "Remote" || updated.Title != "Backend Engineer" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if rec := do(router, http.MethodPut, "/offerts/"+slug, `{"categorySlug":"cooking"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}
	if rec := do(router, http.MethodPut, "/offerts/missing-000000", `{"salary":1}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFilterOffers(t *testing.T) {
	router, _ := newTestRouter(t)

	if rec := do(router, http.MethodGet, "/offerts/filter?companySlug=acme", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no offers, got %d", rec.Code)
	}
	if rec := do(router, http.MethodPost, "/offerts", createBody); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}

	rec := do(router, http.MethodGet, "/offerts/filter?companySlug=acme&categorySlug=engineering", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var offers []domain.Offer
	if err := json.Unmarshal(rec.Body.Bytes(), &offers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(offers) != 1 || offers[0].CompanySlug != "acme" {
		t.Fatalf("unexpected filter result %+v", offers)
	}

	if rec := do(router, http.MethodGet, "/offerts/filter?categorySlug=cooking", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/offerts/filter?salaryMin=lots", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad salaryMin, got %d", rec.Code)
	}
}

func TestFilterOffers_StoreErrorIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(nil, nil, Deps{
		OfferSvc:      &failingOfferService{err: errors.New("connection reset")},
		CategorySvc:   &stubCategoryService{},
		EnterpriseSvc: &stubEnterpriseService{},
	}, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := do(router, http.MethodGet, "/offerts/filter?companySlug=acme", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
	if rec := do(router, http.MethodGet, "/offerts", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for list, got %d", rec.Code)
	}
}

func TestListCategoriesAndEnterprises(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/categorys", "")
	var cats categoryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Code != http.StatusOK || cats.Count != 1 || cats.Categorys[0].Slug != "engineering" {
		t.Fatalf("unexpected categories %d %+v", rec.Code, cats)
	}

	rec = do(router, http.MethodGet, "/enterprises", "")
	var ents enterpriseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &ents); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Code != http.StatusOK || ents.Count != 1 || ents.Enterprises[0].Slug != "acme" {
		t.Fatalf("unexpected enterprises %d %+v", rec.Code, ents)
	}
}

func TestHealthAndReady(t *testing.T) {
	router, _ := newTestRouter(t)
	if rec := do(router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without db, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/offerts", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Fatalf("expected allowed origin header, got %q (status %d)", got, rec.Code)
	}
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	if _, err := buildRouter(nil, nil, Deps{}, nil); err == nil {
		t.Fatalf("expected error for missing services")
	}
}
