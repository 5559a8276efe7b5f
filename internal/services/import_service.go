package services

import (
	"database/sql"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	applog "github.com/3DMakc/3d-makc-fishing-store/internal/log"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowCreated
	rowUpdated
)

// ImportService upserts products from an uploaded CSV. Rows are keyed by
// SKU when present, else by the slug derived from the name. Categories
// are resolved by exact name and created on first sight.
type ImportService struct {
	Prods *repos.ProductRepo
	Cats  *repos.CategoryRepo
}

func NewImportService(prods *repos.ProductRepo, cats *repos.CategoryRepo) *ImportService {
	return &ImportService{Prods: prods, Cats: cats}
}

// Import processes the whole input in one pass. A row-level anomaly
// (parse error, blank name, bad price, store failure) skips only that
// row; the batch never aborts.
func (s *ImportService) Import(r io.Reader) (ImportResult, error) {
	var res ImportResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return res, nil
	}
	if err != nil {
		return res, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		switch s.importRow(field) {
		case rowCreated:
			res.Created++
		case rowUpdated:
			res.Updated++
		default:
			res.Skipped++
		}
	}
	return res, nil
}

func (s *ImportService) importRow(field func(string) string) rowOutcome {
	name := field("name")
	if name == "" {
		return rowSkipped
	}

	price := 0.0
	if raw := field("price_uah"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return rowSkipped
		}
		price = v
	}
	stock, _ := strconv.Atoi(field("stock")) // garbage degrades to 0

	categoryID, err := s.resolveCategory(field("category"))
	if err != nil {
		applog.Error(nil, "import.category.fail", err, map[string]any{"name": name})
		return rowSkipped
	}

	p := domain.Product{
		Name:        name,
		SKU:         field("sku"),
		PriceUAH:    price,
		Stock:       stock,
		Brand:       field("brand"),
		CategoryID:  categoryID,
		Description: field("description"),
		Images:      domain.JoinImages(strings.Split(field("images"), "|")),
		Active:      true,
	}
	base := goslug.Make(name)

	existing, found, err := s.lookup(p.SKU, base)
	if err != nil {
		applog.Error(nil, "import.lookup.fail", err, map[string]any{"name": name})
		return rowSkipped
	}

	if found {
		p.ID = existing.ID
		p.Slug, err = s.Prods.UniqueSlug(base, existing.ID)
		if err == nil {
			err = s.Prods.Update(p)
		}
		if err != nil {
			applog.Error(nil, "import.update.fail", err, map[string]any{"name": name})
			return rowSkipped
		}
		return rowUpdated
	}

	p.Slug, err = s.Prods.UniqueSlug(base, 0)
	if err == nil {
		_, err = s.Prods.Insert(p)
	}
	if err != nil {
		applog.Error(nil, "import.insert.fail", err, map[string]any{"name": name})
		return rowSkipped
	}
	return rowCreated
}

// lookup finds an existing product by SKU first, then by slug.
func (s *ImportService) lookup(sku, slug string) (domain.Product, bool, error) {
	if sku != "" {
		p, err := s.Prods.BySKU(sku)
		if err == nil {
			return p, true, nil
		}
		if err != sql.ErrNoRows {
			return domain.Product{}, false, err
		}
	}
	p, err := s.Prods.SlugLookup(slug)
	if err == nil {
		return p, true, nil
	}
	if err != sql.ErrNoRows {
		return domain.Product{}, false, err
	}
	return domain.Product{}, false, nil
}

// resolveCategory returns the id for an exact name match, creating the
// category (with a fresh unique slug) when unseen. Empty name -> NULL.
func (s *ImportService) resolveCategory(name string) (sql.NullInt64, error) {
	if name == "" {
		return sql.NullInt64{}, nil
	}
	c, err := s.Cats.ByName(name)
	if err == nil {
		return sql.NullInt64{Int64: c.ID, Valid: true}, nil
	}
	if err != sql.ErrNoRows {
		return sql.NullInt64{}, err
	}
	cslug, err := s.Cats.UniqueSlug(goslug.Make(name))
	if err != nil {
		return sql.NullInt64{}, err
	}
	id, err := s.Cats.Insert(name, cslug)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}
