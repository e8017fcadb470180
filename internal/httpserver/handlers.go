package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"offerboard/internal/domain"
	offersvc "offerboard/internal/service/offer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgOfferNotFound  = "offert not found"
	msgFilterNotFound = "no offerts found for this category and/or company"
	msgInternal       = "internal server error"
)

type handlers struct {
	deps   Deps
	logger logrus.FieldLogger
}

type offerListResponse struct {
	Offerts []domain.Offer `json:"offerts"`
	Count   int            `json:"count"`
}

type categoryListResponse struct {
	Categorys []domain.Category `json:"categorys"`
	Count     int               `json:"count"`
}

type enterpriseListResponse struct {
	Enterprises []domain.Enterprise `json:"enterprises"`
	Count       int                 `json:"count"`
}

func (h *handlers) createOffer(c *gin.Context) {
	var in offersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.deps.OfferSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err, msgOfferNotFound)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *handlers) listOffers(c *gin.Context) {
	limit, offset := pageParams(c)
	offers, total, err := h.deps.OfferSvc.List(c.Request.Context(), c.Query("title"), limit, offset)
	if err != nil {
		h.writeError(c, err, msgOfferNotFound)
		return
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	c.JSON(http.StatusOK, offerListResponse{Offerts: offers, Count: total})
}

func (h *handlers) getOffer(c *gin.Context) {
	o, err := h.deps.OfferSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err, msgOfferNotFound)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) updateOffer(c *gin.Context) {
	var patch domain.OfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.deps.OfferSvc.UpdateBySlug(c.Request.Context(), c.Param("slug"), patch)
	if err != nil {
		h.writeError(c, err, msgOfferNotFound)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) deleteOffer(c *gin.Context) {
	if err := h.deps.OfferSvc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		h.writeError(c, err, msgOfferNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offert deleted"})
}

func (h *handlers) filterOffers(c *gin.Context) {
	f := domain.OfferFilter{
		CategorySlug: strings.TrimSpace(c.Query("categorySlug")),
		CompanySlug:  strings.TrimSpace(c.Query("companySlug")),
	}
	var err error
	if f.SalaryMin, err = optionalInt(c, "salaryMin"); err != nil {
		h.writeError(c, err, msgFilterNotFound)
		return
	}
	if f.SalaryMax, err = optionalInt(c, "salaryMax"); err != nil {
		h.writeError(c, err, msgFilterNotFound)
		return
	}

	offers, err := h.deps.OfferSvc.Filter(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err, msgFilterNotFound)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *handlers) listCategories(c *gin.Context) {
	limit, offset := pageParams(c)
	items, total, err := h.deps.CategorySvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err, "category not found")
		return
	}
	if items == nil {
		items = []domain.Category{}
	}
	c.JSON(http.StatusOK, categoryListResponse{Categorys: items, Count: total})
}

func (h *handlers) listEnterprises(c *gin.Context) {
	limit, offset := pageParams(c)
	items, total, err := h.deps.EnterpriseSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err, "enterprise not found")
		return
	}
	if items == nil {
		items = []domain.Enterprise{}
	}
	c.JSON(http.StatusOK, enterpriseListResponse{Enterprises: items, Count: total})
}

// writeError maps domain errors onto status codes. Anything unexpected is
// logged and reported as a generic 500.
func (h *handlers) writeError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

// pageParams reads limit and offset. Unparseable values fall back to zero,
// which the services turn into their defaults.
func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}

func optionalInt(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(name + " must be an integer")
	}
	return &v, nil
}
