package repository

import (
	"context"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/domain"
	"sync"
)

type ProductRepository interface {
	GetAll(ctx context.Context) (domain.Products, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	Add(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id int, input domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

// memoryProductRepository keeps products in insertion order. nextID only
// ever grows, so ids of deleted products are never handed out again.
type memoryProductRepository struct {
	products domain.Products
	nextID   int
	mutex    sync.RWMutex
}

func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		products: domain.Products{},
		nextID:   1,
	}
}

func (r *memoryProductRepository) GetAll(ctx context.Context) (domain.Products, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	products := make(domain.Products, len(r.products))
	for i, product := range r.products {
		products[i] = product.Clone()
	}
	return products, nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			return product.Clone(), nil
		}
	}

	return nil, domain.ErrProductNotFound
}

// Add assigns the next id to product and appends a copy of it to the store
func (r *memoryProductRepository) Add(ctx context.Context, product *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product.Clone())
	return nil
}

// Update replaces name, description and price of the first product with
// the given id and returns a copy of the result
func (r *memoryProductRepository) Update(ctx context.Context, id int, input domain.ProductInput) (*domain.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, product := range r.products {
		if product.ID == id {
			product.Apply(input)
			return product.Clone(), nil
		}
	}

	return nil, domain.ErrProductNotFound
}

// Delete removes every product with the given id
func (r *memoryProductRepository) Delete(ctx context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	kept := r.products[:0]
	for _, product := range r.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}

	if len(kept) == len(r.products) {
		return domain.ErrProductNotFound
	}

	// clear the tail so removed products can be collected
	for i := len(kept); i < len(r.products); i++ {
		r.products[i] = nil
	}
	r.products = kept
	return nil
}
