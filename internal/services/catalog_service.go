package services

import (
	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// HomeData is the landing page: all categories plus the newest hits.
type HomeData struct {
	Categories []domain.Category
	Hits       []domain.Product
}

func (s *CatalogService) Home() (HomeData, error) {
	cats, err := s.Cats.List()
	if err != nil {
		return HomeData{}, err
	}
	hits, err := s.Prods.Recent(12)
	if err != nil {
		return HomeData{}, err
	}
	return HomeData{Categories: cats, Hits: hits}, nil
}

type CatalogData struct {
	Products   []repos.ProductRow
	Categories []domain.Category
	Brands     []string
}

func (s *CatalogService) Catalog(f repos.Filter) (CatalogData, error) {
	products, err := s.Prods.List(f)
	if err != nil {
		return CatalogData{}, err
	}
	cats, err := s.Cats.List()
	if err != nil {
		return CatalogData{}, err
	}
	brands, err := s.Prods.Brands()
	if err != nil {
		return CatalogData{}, err
	}
	return CatalogData{Products: products, Categories: cats, Brands: brands}, nil
}

func (s *CatalogService) Product(slug string) (repos.ProductRow, error) {
	return s.Prods.BySlug(slug)
}
