package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/pantry-scan/pantryscan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(3, time.Hour)
}

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore()

	p := models.NewProduct("https://www.traderjoes.com/home/products/pdp/x-1")
	p.Name = "Peanut Butter"
	s.PutProduct(p)

	assert.Equal(t, p, s.ProductByID(p.ID))
	assert.Equal(t, p, s.ProductByURL(p.URL))
	assert.Equal(t, 1, s.ProductCount())
}

func TestProductMissing(t *testing.T) {
	s := newTestStore()

	assert.Nil(t, s.ProductByID("nope"))
	assert.Nil(t, s.ProductByURL("https://example.com"))
}

func TestPutProduct_ReplacesSameURL(t *testing.T) {
	s := newTestStore()
	url := "https://www.traderjoes.com/home/products/pdp/x-1"

	first := models.NewProduct(url)
	second := models.NewProduct(url)
	s.PutProduct(first)
	s.PutProduct(second)

	assert.Equal(t, 1, s.ProductCount())
	assert.Nil(t, s.ProductByID(first.ID))
	assert.Equal(t, second, s.ProductByURL(url))
}

func TestPutProduct_EvictsAtCapacity(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 4; i++ {
		s.PutProduct(models.NewProduct(fmt.Sprintf("https://www.traderjoes.com/home/products/pdp/x-%d", i)))
	}

	assert.Equal(t, 3, s.ProductCount())
}

func TestJobLifecycle(t *testing.T) {
	s := newTestStore()

	job := models.NewScrapeJob("https://www.traderjoes.com/home/products/pdp/x-1", 3)
	s.PutJob(job)

	got := s.Job(job.ID)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusPending, got.Status)

	s.UpdateJob(job.ID, func(j *models.ScrapeJob) { j.MarkProcessing() })
	assert.Equal(t, models.StatusProcessing, s.Job(job.ID).Status)

	s.UpdateJob(job.ID, func(j *models.ScrapeJob) { j.MarkCompleted("prod-1") })
	got = s.Job(job.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "prod-1", got.ProductID)
	assert.NotNil(t, got.CompletedAt)
	assert.True(t, got.Done())
}

func TestJob_ReturnsCopy(t *testing.T) {
	s := newTestStore()

	job := models.NewScrapeJob("https://www.traderjoes.com/home/products/pdp/x-1", 3)
	s.PutJob(job)

	snapshot := s.Job(job.ID)
	snapshot.Status = models.StatusFailed

	assert.Equal(t, models.StatusPending, s.Job(job.ID).Status)
}

func TestUpdateJob_UnknownIDIgnored(t *testing.T) {
	s := newTestStore()

	// Must not panic.
	s.UpdateJob("nope", func(j *models.ScrapeJob) { j.MarkProcessing() })
	assert.Nil(t, s.Job("nope"))
}
