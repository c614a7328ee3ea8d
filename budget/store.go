package budget

import (
	"context"
	"errors"
	"time"

	"voyago/apperr"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the line-item persistence surface. Budget items have no version
// token: concurrent writes to the same item are last-writer-wins.
type Store interface {
	Insert(ctx context.Context, item *models.BudgetItem) error
	Get(ctx context.Context, itineraryID, itemID string) (*models.BudgetItem, error)
	Replace(ctx context.Context, item *models.BudgetItem) error
	Delete(ctx context.Context, itineraryID, itemID string) error
	DeleteByItinerary(ctx context.Context, itineraryID string) (int64, error)
	List(ctx context.Context, itineraryID string, dayNumber *int) ([]models.BudgetItem, error)
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Insert(ctx context.Context, item *models.BudgetItem) error {
	if _, err := s.coll.InsertOne(ctx, item); err != nil {
		return apperr.Internal("error inserting budget item", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, itineraryID, itemID string) (*models.BudgetItem, error) {
	filter := bson.M{"itinerary_id": itineraryID, "itemid": itemID}
	var item models.BudgetItem
	err := s.coll.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("budget item not found")
	}
	if err != nil {
		return nil, apperr.Internal("error loading budget item", err)
	}
	return &item, nil
}

func (s *MongoStore) Replace(ctx context.Context, item *models.BudgetItem) error {
	item.UpdatedAt = time.Now().Unix()
	filter := bson.M{"itinerary_id": item.ItineraryID, "itemid": item.ItemID}
	res, err := s.coll.ReplaceOne(ctx, filter, item)
	if err != nil {
		return apperr.Internal("error saving budget item", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("budget item not found")
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, itineraryID, itemID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"itinerary_id": itineraryID, "itemid": itemID})
	if err != nil {
		return apperr.Internal("error deleting budget item", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("budget item not found")
	}
	return nil
}

func (s *MongoStore) DeleteByItinerary(ctx context.Context, itineraryID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"itinerary_id": itineraryID})
	if err != nil {
		return 0, apperr.Internal("error deleting budget items", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) List(ctx context.Context, itineraryID string, dayNumber *int) ([]models.BudgetItem, error) {
	filter := bson.M{"itinerary_id": itineraryID}
	if dayNumber != nil {
		filter["day_number"] = *dayNumber
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("error listing budget items", err)
	}
	defer cursor.Close(ctx)

	items := []models.BudgetItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Internal("error decoding budget items", err)
	}
	return items, nil
}
