package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/pkg/apperror"
	"github.com/cdzlabs/pos-api/pkg/utils"
)

// UserService handles employee management
type UserService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, storeRepo repository.StoreRepository) *UserService {
	return &UserService{userRepo: userRepo, storeRepo: storeRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	StoreID   *uuid.UUID
}

// CreateUser registers a new employee, optionally assigned to a store
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	if input.StoreID != nil {
		store, err := s.storeRepo.GetByID(ctx, *input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "cashier"
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      role,
		StoreID:   input.StoreID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user with their store
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsersByStore lists the employees assigned to a store
func (s *UserService) ListUsersByStore(ctx context.Context, storeID uuid.UUID) ([]entity.User, error) {
	return s.userRepo.ListByStore(ctx, storeID)
}

// CreateStoreInput represents the create store input
type CreateStoreInput struct {
	Brand   string
	Address *string
	Phone   *string
	Email   *string
}

// CreateStore registers a new store
func (s *UserService) CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		Brand:   input.Brand,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore retrieves a store by ID
func (s *UserService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// ListStores lists all stores
func (s *UserService) ListStores(ctx context.Context) ([]entity.Store, error) {
	return s.storeRepo.List(ctx)
}

// UpdateStoreInput represents the update store input
type UpdateStoreInput struct {
	Brand   *string
	Address *string
	Phone   *string
	Email   *string
}

// UpdateStore updates a store's details
func (s *UserService) UpdateStore(ctx context.Context, id uuid.UUID, input *UpdateStoreInput) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	if input.Brand != nil {
		store.Brand = *input.Brand
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Email != nil {
		store.Email = input.Email
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// AssignStore moves an employee to a store
func (s *UserService) AssignStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	user.StoreID = &storeID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
