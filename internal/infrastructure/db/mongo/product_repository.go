package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

// productDocument is the persisted shape of a product. Price is stored as a
// decimal string to avoid float rounding in the database.
type productDocument struct {
	ID           string    `bson:"_id"`
	SKU          string    `bson:"sku"`
	Name         string    `bson:"name"`
	Description  string    `bson:"description,omitempty"`
	Price        string    `bson:"price"`
	Quantity     int       `bson:"quantity"`
	ReorderLevel int       `bson:"reorder_level"`
	Status       string    `bson:"status"`
	CategoryID   string    `bson:"category_id"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toProductDocument(p *domain.Product) productDocument {
	return productDocument{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.String(),
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		Status:       string(p.Status),
		CategoryID:   p.CategoryID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d productDocument) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price for product %s: %w", d.ID, err)
	}
	return &domain.Product{
		ID:           d.ID,
		SKU:          d.SKU,
		Name:         d.Name,
		Description:  d.Description,
		Price:        price,
		Quantity:     d.Quantity,
		ReorderLevel: d.ReorderLevel,
		Status:       domain.ProductStatus(d.Status),
		CategoryID:   d.CategoryID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// Create inserts a new product document, assigning a fresh id.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	product.ID = uuid.NewString()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, toProductDocument(product))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain()
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"category_id": categoryID})
}

// Search matches keyword as a case-insensitive substring of name or
// description. Regex metacharacters in the keyword are escaped so the search
// behaves as a plain substring match.
func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	if keyword == "" {
		return r.findMany(ctx, bson.M{})
	}

	pattern := regexp.QuoteMeta(keyword)
	regex := bson.M{"$regex": pattern, "$options": "i"}
	return r.findMany(ctx, bson.M{
		"$or": []bson.M{
			{"name": regex},
			{"description": regex},
		},
	})
}

// FindLowStock returns products whose quantity is at or below their reorder
// level. The comparison is between two fields of the same document, hence $expr.
func (r *ProductRepository) FindLowStock(ctx context.Context) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{
		"$expr": bson.M{"$lte": bson.A{"$quantity", "$reorder_level"}},
	})
}

func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{"sku": sku})
	if err != nil {
		return false, fmt.Errorf("count products by sku: %w", err)
	}
	return count > 0, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	product.UpdatedAt = time.Now().UTC()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, toProductDocument(product))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// EnsureIndexes creates the unique sku index plus the lookup indexes used by
// the category and status queries.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
