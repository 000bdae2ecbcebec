package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

func TestWarehouseList_IncluyeElTotal(t *testing.T) {
	repo := newFakeWarehouseRepo()
	now := time.Now()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Create(&entity.Warehouse{
			ID:        fmt.Sprintf("wh-%d", i),
			Name:      fmt.Sprintf("Bodega %d", i),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}
	uc := usecase.NewWarehouseUseCase(repo, &fakeStockRepo{}, noopCache{})

	out, err := uc.List(repository.WarehouseFilter{}, 2, 0)
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(5), out.Page.Total, "el total refleja todas las filas, no solo la página")
}
