package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

const collectionRoles = "roles"

type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDocument
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: doc.ID, Name: doc.Name, Description: doc.Description}, nil
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return count, nil
}

// CreateAll seeds the role catalogue. Used once at startup when the
// collection is empty.
func (r *RoleRepository) CreateAll(ctx context.Context, roles []domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(roles))
	for _, role := range roles {
		docs = append(docs, roleDocument{
			ID:          uuid.NewString(),
			Name:        role.Name,
			Description: role.Description,
		})
	}

	_, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
