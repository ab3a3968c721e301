package services_test

import (
	"testing"

	"canteen/internal/models"
	"canteen/internal/repositories"
	"canteen/internal/services"

	"github.com/stretchr/testify/assert"
)

func seededCatalog(t *testing.T) (*services.CatalogService, *repositories.MockFoodItemRepository) {
	t.Helper()
	repo := repositories.NewMockFoodItemRepository()
	items := []models.FoodItem{
		{Name: "Dosa", Category: models.CategoryBreakfast, Price: 30, IsAvailable: true, PreparationTime: 15},
		{Name: "Tea", Category: models.CategoryBeverages, Price: 10, IsAvailable: true, PreparationTime: 5},
		{Name: "Biriyani", Category: models.CategoryLunch, Price: 80, IsAvailable: false, PreparationTime: 30},
	}
	for i := range items {
		assert.NoError(t, repo.Create(&items[i]))
	}
	return services.NewCatalogService(repo), repo
}

func TestCatalogService_ListItems(t *testing.T) {
	svc, _ := seededCatalog(t)

	all, err := svc.ListItems("")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	beverages, err := svc.ListItems(models.CategoryBeverages)
	assert.NoError(t, err)
	assert.Len(t, beverages, 1)
	assert.Equal(t, "Tea", beverages[0].Name)

	desserts, err := svc.ListItems(models.CategoryDessert)
	assert.NoError(t, err)
	assert.Empty(t, desserts)
}

func TestCatalogService_GetItem(t *testing.T) {
	svc, _ := seededCatalog(t)

	item, err := svc.GetItem(1)
	assert.NoError(t, err)
	assert.Equal(t, "Dosa", item.Name)

	_, err = svc.GetItem(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_CreateItem(t *testing.T) {
	svc, repo := seededCatalog(t)

	item := &models.FoodItem{Name: "Samosa", Category: models.CategorySnacks, Price: 15, IsAvailable: true, PreparationTime: 5}
	assert.NoError(t, svc.CreateItem(item))
	assert.NotZero(t, item.ID)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestCatalogService_UpdateItem(t *testing.T) {
	svc, _ := seededCatalog(t)

	// Marking the Biriyani available again is the everyday admin edit.
	item, err := svc.GetItem(3)
	assert.NoError(t, err)
	item.IsAvailable = true
	item.Price = 85
	assert.NoError(t, svc.UpdateItem(item))

	stored, err := svc.GetItem(3)
	assert.NoError(t, err)
	assert.True(t, stored.IsAvailable)
	assert.Equal(t, 85.0, stored.Price)

	missing := &models.FoodItem{ID: 99, Name: "Ghost", Category: models.CategorySnacks, Price: 1}
	assert.ErrorIs(t, svc.UpdateItem(missing), repositories.ErrNotFound)
}

func TestCatalogService_DeleteItem(t *testing.T) {
	svc, repo := seededCatalog(t)

	assert.NoError(t, svc.DeleteItem(2))
	_, err := svc.GetItem(2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.ErrorIs(t, svc.DeleteItem(2), repositories.ErrNotFound)
}
