package service

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/repository"
	"sync"
)

type ProductService interface {
	ListProducts(ctx context.Context, restaurantID int) (domain.Products, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, restaurantID int, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, input domain.ProductInput) error
	DeleteProduct(ctx context.Context, id int) error
	Close() error
}

// Options tune the behavior of the product service
type Options struct {
	// FilterByRestaurant restricts listings to the requested restaurant.
	// When false every product is listed whatever restaurant is asked for.
	FilterByRestaurant bool
}

type productService struct {
	repo     repository.ProductRepository
	eventBus *events.EventBus[events.Event]
	logger   hclog.Logger
	opts     Options
	once     sync.Once
}

func NewProductService(
	repo repository.ProductRepository,
	eventBus *events.EventBus[events.Event],
	logger hclog.Logger,
	opts Options) ProductService {
	return &productService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		opts:     opts,
	}
}

func (s *productService) ListProducts(ctx context.Context, restaurantID int) (domain.Products, error) {
	s.logger.Debug("Listing products", "restaurant_id", restaurantID, "filtered", s.opts.FilterByRestaurant)

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Unable to list products", "error", err)
		return nil, err
	}

	if !s.opts.FilterByRestaurant {
		return products, nil
	}

	filtered := make(domain.Products, 0, len(products))
	for _, product := range products {
		if product.RestaurantID == restaurantID {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *productService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	s.logger.Debug("Getting product by ID", "id", id)

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug("Unable to get product", "id", id, "error", err)
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, restaurantID int, input domain.ProductInput) (*domain.Product, error) {
	product := &domain.Product{RestaurantID: restaurantID}
	product.Apply(input)

	if err := s.repo.Add(ctx, product); err != nil {
		s.logger.Error("Unable to add product", "name", product.DisplayName(), "error", err)
		return nil, err
	}

	s.logger.Info("Product created", "name", product.DisplayName(), "id", product.ID)

	s.eventBus.Publish(events.ProductAdded{
		ProductID:    product.ID,
		RestaurantID: product.RestaurantID,
		Name:         product.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int, input domain.ProductInput) error {
	product, err := s.repo.Update(ctx, id, input)
	if err != nil {
		s.logger.Debug("Unable to update product", "id", id, "error", err)
		return err
	}

	s.logger.Info("Product updated", "name", product.DisplayName(), "id", product.ID)

	s.eventBus.Publish(events.ProductUpdated{ProductID: product.ID, Name: product.Name})
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Debug("Unable to delete product", "id", id, "error", err)
		return err
	}

	s.logger.Info("Product deleted", "id", id)

	s.eventBus.Publish(events.ProductDeleted{ProductID: id})
	return nil
}

// Close stops event delivery; subscribers see their channels closed
func (s *productService) Close() error {
	s.once.Do(func() {
		s.logger.Info("Shutting down ProductService...")
		s.eventBus.Close()
	})
	return nil
}
