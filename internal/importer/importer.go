package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"offerboard/internal/domain"
	offersvc "offerboard/internal/service/offer"

	"github.com/sirupsen/logrus"
)

type OfferCreator interface {
	Create(ctx context.Context, in offersvc.CreateInput) (*domain.Offer, error)
}

// CSVImporter reads offert rows from a CSV file and creates them through the
// offer service, so every row gets a fresh slug and the usual validation.
type CSVImporter struct {
	reader  *csv.Reader
	offers  OfferCreator
	logger  logrus.FieldLogger
	skipBad bool
}

type Option func(*CSVImporter)

// SkipInvalid makes rows rejected by validation get logged and skipped
// instead of aborting the run.
func SkipInvalid() Option {
	return func(i *CSVImporter) { i.skipBad = true }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *CSVImporter) { i.logger = logger }
}

func NewCSVImporter(r io.Reader, offers OfferCreator, opts ...Option) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	imp := &CSVImporter{
		reader: csvr,
		offers: offers,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Report summarizes a finished run.
type Report struct {
	Imported int
	Skipped  int
	Slugs    []string
}

// Run reads the header row and creates one offert per data row. Required
// columns are title, company and categorySlug.
func (i *CSVImporter) Run(ctx context.Context) (Report, error) {
	var rep Report

	headers, err := i.reader.Read()
	if err != nil {
		return rep, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"title", "company", "categorySlug"} {
		if _, ok := index[col]; !ok {
			return rep, fmt.Errorf("missing required column %q", col)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		in, err := parseRow(record, index)
		if err == nil {
			var created *domain.Offer
			created, err = i.offers.Create(ctx, in)
			if err == nil {
				rep.Imported++
				rep.Slugs = append(rep.Slugs, created.Slug)
				continue
			}
		}

		if i.skipBad && domain.IsValidation(err) {
			rep.Skipped++
			i.logger.WithError(err).WithField("line", line).Warn("skipping offert row")
			continue
		}
		return rep, fmt.Errorf("row %d: %w", line, err)
	}

	return rep, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (offersvc.CreateInput, error) {
	in := offersvc.CreateInput{
		Title:        pick(record, index, "title"),
		Company:      pick(record, index, "company"),
		Location:     pick(record, index, "location"),
		Description:  pick(record, index, "description"),
		Requirements: pick(record, index, "requirements"),
		Image:        pick(record, index, "image"),
		CategorySlug: pick(record, index, "categorySlug"),
	}
	if s := pick(record, index, "salary"); s != "" {
		salary, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return in, domain.NewValidationError(fmt.Sprintf("invalid salary %q", s))
		}
		in.Salary = salary
	}
	return in, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
