package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casaline/listing-portal/internal/core/domain"
)

const collectionProfiles = "agent_profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB.
// Profiles are keyed by the owning user id, one document per agent.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.AgentProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.AgentProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.AgentProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// Update persists the subscription fields of an existing profile. The window
// is unset rather than written as null so the "absent when free" invariant
// holds at the document level too.
func (r *ProfileRepository) Update(ctx context.Context, profile *domain.AgentProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"subscription_tier": profile.Tier,
		"quota_policy":      profile.Quota,
		"updated_at":        profile.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if profile.Window != nil {
		set["subscription_window"] = profile.Window
	} else {
		update["$unset"] = bson.M{"subscription_window": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": profile.UserID}, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// UpdateStatus applies a compare-and-set on the account status: the filter
// includes the expected current status, so when two administrators race only
// one update matches.
func (r *ProfileRepository) UpdateStatus(ctx context.Context, userID string, from, to domain.AgentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update profile status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing profile from a lost race.
		if _, findErr := r.FindByUserID(ctx, userID); findErr != nil {
			return findErr
		}
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) ListByStatus(ctx context.Context, status domain.AgentStatus) ([]*domain.AgentProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cur.Close(ctx)

	var profiles []*domain.AgentProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

// EnsureIndexes creates necessary indexes on the agent_profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
