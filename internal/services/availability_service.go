package services

import (
	"database/sql"

	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
)

// Availability is the display-only stock status; nothing reserves or
// decrements stock at checkout.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

type AvailabilityService struct {
	Prods *repos.ProductRepo
}

func NewAvailabilityService(prods *repos.ProductRepo) *AvailabilityService {
	return &AvailabilityService{Prods: prods}
}

func (s *AvailabilityService) Check(productID int64) (Availability, error) {
	p, err := s.Prods.Get(productID)
	if err == sql.ErrNoRows {
		return Availability{Status: "OUT_OF_STOCK"}, nil
	}
	if err != nil {
		return Availability{}, err
	}
	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: p.Stock}, nil
}
