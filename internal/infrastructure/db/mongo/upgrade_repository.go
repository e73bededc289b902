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
)

const collectionUpgrades = "upgrade_requests"

// UpgradeRequestRepository implements ports.UpgradeRequestRepository using
// MongoDB.
type UpgradeRequestRepository struct {
	col *mongo.Collection
}

func NewUpgradeRequestRepository(db *mongo.Database) *UpgradeRequestRepository {
	return &UpgradeRequestRepository{col: db.Collection(collectionUpgrades)}
}

type mongoUpgrade struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	AgentID          string             `bson:"agent_id"`
	PlanID           string             `bson:"plan_id"`
	AmountClaimed    float64            `bson:"amount_claimed"`
	DurationLabel    string             `bson:"duration_label"`
	MonthlyListings  int                `bson:"monthly_listings"`
	ReceiptReference string             `bson:"receipt_reference"`
	ReviewState      string             `bson:"review_state"`
	CreatedAt        time.Time          `bson:"created_at"`
	ReviewedAt       *time.Time         `bson:"reviewed_at,omitempty"`
	ReviewedBy       string             `bson:"reviewed_by,omitempty"`
}

func (mu *mongoUpgrade) toDomain() *domain.UpgradeRequest {
	return &domain.UpgradeRequest{
		ID:               mu.ID.Hex(),
		AgentID:          mu.AgentID,
		PlanID:           mu.PlanID,
		AmountClaimed:    mu.AmountClaimed,
		DurationLabel:    domain.DurationLabel(mu.DurationLabel),
		MonthlyListings:  mu.MonthlyListings,
		ReceiptReference: mu.ReceiptReference,
		ReviewState:      domain.ReviewState(mu.ReviewState),
		CreatedAt:        mu.CreatedAt,
		ReviewedAt:       mu.ReviewedAt,
		ReviewedBy:       mu.ReviewedBy,
	}
}

func (r *UpgradeRequestRepository) Create(ctx context.Context, req *domain.UpgradeRequest) (*domain.UpgradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUpgrade{
		AgentID:          req.AgentID,
		PlanID:           req.PlanID,
		AmountClaimed:    req.AmountClaimed,
		DurationLabel:    string(req.DurationLabel),
		MonthlyListings:  req.MonthlyListings,
		ReceiptReference: req.ReceiptReference,
		ReviewState:      string(req.ReviewState),
		CreatedAt:        req.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert upgrade request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UpgradeRequestRepository) FindByID(ctx context.Context, id string) (*domain.UpgradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var mu mongoUpgrade
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find upgrade request: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UpgradeRequestRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.UpgradeRequest, error) {
	return r.list(ctx, bson.M{"agent_id": agentID}, -1)
}

func (r *UpgradeRequestRepository) ListByState(ctx context.Context, state domain.ReviewState) ([]*domain.UpgradeRequest, error) {
	filter := bson.M{}
	if state != "" {
		filter["review_state"] = string(state)
	}
	// Review queues are worked oldest first.
	return r.list(ctx, filter, 1)
}

func (r *UpgradeRequestRepository) list(ctx context.Context, filter bson.M, sortDir int) ([]*domain.UpgradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: sortDir}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list upgrade requests: %w", err)
	}
	defer cur.Close(ctx)

	var requests []*domain.UpgradeRequest
	for cur.Next(ctx) {
		var mu mongoUpgrade
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode upgrade request: %w", err)
		}
		requests = append(requests, mu.toDomain())
	}
	return requests, cur.Err()
}

// TransitionState applies a compare-and-set on the review state: the filter
// matches only when the stored state still equals from, so when two
// administrators race exactly one FindOneAndUpdate succeeds. Transitioning
// back to pending clears the reviewer fields (used by the approval service's
// compensation path).
func (r *UpgradeRequestRepository) TransitionState(ctx context.Context, id string, from, to domain.ReviewState, reviewedBy string, reviewedAt time.Time) (*domain.UpgradeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	update := bson.M{"$set": bson.M{"review_state": string(to)}}
	if to == domain.ReviewPending {
		update["$unset"] = bson.M{"reviewed_by": "", "reviewed_at": ""}
	} else {
		update["$set"].(bson.M)["reviewed_by"] = reviewedBy
		update["$set"].(bson.M)["reviewed_at"] = reviewedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUpgrade
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "review_state": string(from)},
		update, opts,
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing request from a lost race.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrInvalidStateTransition
		}
		return nil, fmt.Errorf("transition upgrade request: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates necessary indexes on the upgrade_requests collection.
func (r *UpgradeRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "agent_id", Value: 1}}},
		{Keys: bson.D{{Key: "review_state", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
