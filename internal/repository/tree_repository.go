package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/google/uuid"
)

var (
	ErrTreeNotFound = errors.New("tree not found")
)

// TreeRepository defines the interface for tree catalog data access
type TreeRepository interface {
	List(ctx context.Context, size string) ([]models.Tree, error)
	GetByID(ctx context.Context, id string) (*models.Tree, error)
	Upsert(ctx context.Context, trees []models.Tree, overwrite bool) (int, error)
}

// InMemoryTreeRepository implements TreeRepository with in-memory storage.
// Trees are listed in insertion order and are unique by name.
type InMemoryTreeRepository struct {
	mu     sync.RWMutex
	order  []string
	trees  map[string]models.Tree
	byName map[string]string
}

// NewInMemoryTreeRepository creates an empty tree repository
func NewInMemoryTreeRepository() *InMemoryTreeRepository {
	return &InMemoryTreeRepository{
		trees:  make(map[string]models.Tree),
		byName: make(map[string]string),
	}
}

// List returns trees of the given size, or all trees when size is empty
func (r *InMemoryTreeRepository) List(ctx context.Context, size string) ([]models.Tree, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trees := make([]models.Tree, 0, len(r.order))
	for _, id := range r.order {
		tree := r.trees[id]
		if size != "" && !strings.EqualFold(tree.Size, size) {
			continue
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// GetByID returns a tree by its ID
func (r *InMemoryTreeRepository) GetByID(ctx context.Context, id string) (*models.Tree, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tree, exists := r.trees[id]
	if !exists {
		return nil, ErrTreeNotFound
	}
	return &tree, nil
}

// Upsert inserts trees whose name is not yet present. With overwrite, trees
// with an existing name replace the stored one and keep its id.
// It returns how many trees were inserted or replaced.
func (r *InMemoryTreeRepository) Upsert(ctx context.Context, trees []models.Tree, overwrite bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, tree := range trees {
		key := strings.ToLower(tree.Name)
		if id, exists := r.byName[key]; exists {
			if !overwrite {
				continue
			}
			tree.ID = id
			r.trees[id] = tree
			changed++
			continue
		}

		if tree.ID == "" {
			tree.ID = uuid.NewString()
		}
		r.trees[tree.ID] = tree
		r.byName[key] = tree.ID
		r.order = append(r.order, tree.ID)
		changed++
	}
	return changed, nil
}
