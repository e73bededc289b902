package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

const collectionListings = "listings"

// ListingRepository implements ports.ListingRepository using MongoDB.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

type mongoListing struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	OwnerID      string                `bson:"owner_id"`
	Title        string                `bson:"title"`
	Description  string                `bson:"description"`
	PropertyType string                `bson:"property_type"`
	Price        float64               `bson:"price"`
	Currency     string                `bson:"currency"`
	Address      domain.ListingAddress `bson:"address"`
	Bedrooms     int                   `bson:"bedrooms"`
	Bathrooms    int                   `bson:"bathrooms"`
	AreaSqm      float64               `bson:"area_sqm"`
	CreatedAt    time.Time             `bson:"created_at"`
	UpdatedAt    time.Time             `bson:"updated_at"`
}

func (ml *mongoListing) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:           ml.ID.Hex(),
		OwnerID:      ml.OwnerID,
		Title:        ml.Title,
		Description:  ml.Description,
		PropertyType: domain.PropertyType(ml.PropertyType),
		Price:        ml.Price,
		Currency:     ml.Currency,
		Address:      ml.Address,
		Bedrooms:     ml.Bedrooms,
		Bathrooms:    ml.Bathrooms,
		AreaSqm:      ml.AreaSqm,
		CreatedAt:    ml.CreatedAt,
		UpdatedAt:    ml.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoListing{
		OwnerID:      listing.OwnerID,
		Title:        listing.Title,
		Description:  listing.Description,
		PropertyType: string(listing.PropertyType),
		Price:        listing.Price,
		Currency:     listing.Currency,
		Address:      listing.Address,
		Bedrooms:     listing.Bedrooms,
		Bathrooms:    listing.Bathrooms,
		AreaSqm:      listing.AreaSqm,
		CreatedAt:    listing.CreatedAt,
		UpdatedAt:    listing.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	listing.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var ml mongoListing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return ml.toDomain(), nil
}

// List returns a page of listings matching filter plus the total count.
func (r *ListingRepository) List(ctx context.Context, f ports.ListListingsFilter) ([]*domain.Listing, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.PropertyType != "" {
		filter["property_type"] = f.PropertyType
	}
	if f.City != "" {
		filter["address.city"] = f.City
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.PriceMin > 0 || f.PriceMax > 0 {
		price := bson.M{}
		if f.PriceMin > 0 {
			price["$gte"] = f.PriceMin
		}
		if f.PriceMax > 0 {
			price["$lte"] = f.PriceMax
		}
		filter["price"] = price
	}
	if !f.DateFrom.IsZero() || !f.DateTo.IsZero() {
		created := bson.M{}
		if !f.DateFrom.IsZero() {
			created["$gte"] = f.DateFrom
		}
		if !f.DateTo.IsZero() {
			created["$lte"] = f.DateTo
		}
		filter["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	defer cur.Close(ctx)

	var listings []*domain.Listing
	for cur.Next(ctx) {
		var ml mongoListing
		if err := cur.Decode(&ml); err != nil {
			return nil, 0, fmt.Errorf("decode listing: %w", err)
		}
		listings = append(listings, ml.toDomain())
	}
	return listings, total, cur.Err()
}

// CreationTimes projects only created_at for the owner's listings; the quota
// evaluator needs nothing else.
func (r *ListingRepository) CreationTimes(ctx context.Context, ownerID string) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"created_at": 1})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list creation times: %w", err)
	}
	defer cur.Close(ctx)

	var times []time.Time
	for cur.Next(ctx) {
		var doc struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode creation time: %w", err)
		}
		times = append(times, doc.CreatedAt)
	}
	return times, cur.Err()
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the listings collection.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "property_type", Value: 1}}},
		{Keys: bson.D{{Key: "address.city", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
