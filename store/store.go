// Package store is the in-memory home for scraped products and their
// jobs. Records live until the TTL sweep or capacity eviction removes
// them; nothing is persisted across restarts.
package store

import (
	"sync"
	"time"

	"github.com/pantry-scan/pantryscan/models"
)

type productEntry struct {
	product   *models.Product
	createdAt time.Time
}

type jobEntry struct {
	job       *models.ScrapeJob
	createdAt time.Time
}

// Store holds products (by ID and by URL) and scrape jobs (by ID).
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	products    map[string]*productEntry // keyed by product ID
	byURL       map[string]string        // URL -> product ID
	jobs        map[string]*jobEntry     // keyed by job ID
	maxProducts int
	ttl         time.Duration
}

// New creates a Store retaining at most maxProducts records for ttl.
// A background goroutine sweeps expired entries every 5 minutes.
func New(maxProducts int, ttl time.Duration) *Store {
	s := &Store{
		products:    make(map[string]*productEntry),
		byURL:       make(map[string]string),
		jobs:        make(map[string]*jobEntry),
		maxProducts: maxProducts,
		ttl:         ttl,
	}
	go s.sweepLoop()
	return s
}

// PutProduct stores a record, replacing any previous record for the same
// URL. At capacity, one arbitrary record is evicted to make room (map
// iteration is random in Go).
func (s *Store) PutProduct(p *models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prevID, ok := s.byURL[p.URL]; ok {
		delete(s.products, prevID)
	} else if len(s.products) >= s.maxProducts {
		for id, e := range s.products {
			delete(s.products, id)
			delete(s.byURL, e.product.URL)
			break
		}
	}

	s.products[p.ID] = &productEntry{product: p, createdAt: time.Now()}
	s.byURL[p.URL] = p.ID
}

// ProductByID returns a stored record, or nil.
func (s *Store) ProductByID(id string) *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.products[id]; ok {
		return e.product
	}
	return nil
}

// ProductByURL returns the most recent record for a URL, or nil.
func (s *Store) ProductByURL(url string) *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byURL[url]; ok {
		if e, ok := s.products[id]; ok {
			return e.product
		}
	}
	return nil
}

// ProductCount returns the number of stored records.
func (s *Store) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// PutJob registers a new job.
func (s *Store) PutJob(j *models.ScrapeJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = &jobEntry{job: j, createdAt: time.Now()}
}

// Job returns a copy of the job's current state, or nil when unknown.
// A copy is returned so readers never observe a half-applied update.
func (s *Store) Job(id string) *models.ScrapeJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.jobs[id]; ok {
		snapshot := *e.job
		return &snapshot
	}
	return nil
}

// UpdateJob applies fn to the job under the store lock. Unknown IDs are
// ignored (the job may have been swept).
func (s *Store) UpdateJob(id string, fn func(*models.ScrapeJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.jobs[id]; ok {
		fn(e.job)
	}
}

// sweepLoop evicts entries older than the TTL every 5 minutes.
// Unfinished jobs are kept regardless of age.
func (s *Store) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, e := range s.products {
			if e.createdAt.Before(cutoff) {
				delete(s.products, id)
				delete(s.byURL, e.product.URL)
			}
		}
		for id, e := range s.jobs {
			if e.createdAt.Before(cutoff) && e.job.Done() {
				delete(s.jobs, id)
			}
		}
		s.mu.Unlock()
	}
}
