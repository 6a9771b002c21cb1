package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProduct(t *testing.T) {
	p := NewProduct("https://www.traderjoes.com/home/products/pdp/x-1")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, ScraperVersion, p.Version)
	assert.False(t, p.ScrapedAt.IsZero())
}

func TestProductValid(t *testing.T) {
	p := NewProduct("https://www.traderjoes.com/home/products/pdp/x-1")
	assert.False(t, p.Valid(), "record without name and ingredients is incomplete")

	p.Name = "Peanut Butter"
	assert.False(t, p.Valid(), "record without ingredients is incomplete")

	p.Ingredients = []string{"Peanuts"}
	assert.True(t, p.Valid())
}

func TestScrapeJobLifecycle(t *testing.T) {
	j := NewScrapeJob("https://www.traderjoes.com/home/products/pdp/x-1", 3)
	assert.Equal(t, StatusPending, j.Status)
	assert.False(t, j.Done())

	j.MarkProcessing()
	assert.Equal(t, StatusProcessing, j.Status)
	assert.NotNil(t, j.StartedAt)
	assert.False(t, j.Done())

	j.MarkCompleted("prod-1")
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, "prod-1", j.ProductID)
	assert.NotNil(t, j.CompletedAt)
	assert.True(t, j.Done())
}

func TestScrapeJobMarkFailed(t *testing.T) {
	j := NewScrapeJob("https://www.traderjoes.com/home/products/pdp/x-1", 3)

	j.MarkProcessing()
	j.MarkFailed("navigation to target URL failed")

	assert.Equal(t, StatusFailed, j.Status)
	assert.Equal(t, "navigation to target URL failed", j.Error)
	assert.Equal(t, 1, j.RetryCount)
	assert.True(t, j.Done())
}

func TestScrapeErrorWrapping(t *testing.T) {
	inner := assert.AnError
	err := NewScrapeError(ErrCodeNavigation, "navigation to target URL failed", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), ErrCodeNavigation)
	assert.Contains(t, err.Error(), "navigation to target URL failed")
	assert.Equal(t, ErrCodeNavigation, err.ToDetail().Code)
}
