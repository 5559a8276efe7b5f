package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	"github.com/3DMakc/3d-makc-fishing-store/internal/repos"
	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

func TestAvailabilityCheck(t *testing.T) {
	db := newTestDB(t)
	prods := repos.NewProductRepo(db)
	svc := services.NewAvailabilityService(prods)

	cases := []struct {
		stock  int
		status string
	}{
		{12, "IN_STOCK"},
		{5, "IN_STOCK"},
		{4, "LOW_STOCK"},
		{1, "LOW_STOCK"},
		{0, "OUT_OF_STOCK"},
	}
	for i, tc := range cases {
		id, err := prods.Insert(domain.Product{Name: "p", Slug: fmt.Sprintf("p-%d", i), Stock: tc.stock, Active: true})
		require.NoError(t, err)

		got, err := svc.Check(id)
		require.NoError(t, err)
		assert.Equal(t, services.Availability{Status: tc.status, Qty: tc.stock}, got, "stock %d", tc.stock)
	}

	// unknown product id reads as out of stock, not as an error
	got, err := svc.Check(99999)
	require.NoError(t, err)
	assert.Equal(t, services.Availability{Status: "OUT_OF_STOCK"}, got)
}
