package finalday

import (
	"context"
	"errors"
	"time"

	"voyago/apperr"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DayStore is the persistence surface the service mutates through.
// Update performs a compare-and-swap on the version the caller read and
// must report a conflict when a concurrent writer has bumped it since.
type DayStore interface {
	Get(ctx context.Context, originID string, dayNumber int, dayType string) (*models.ItineraryDay, error)
	ListByOrigin(ctx context.Context, originID, dayType string) ([]models.ItineraryDay, error)
	CountByOrigin(ctx context.Context, originID, dayType string) (int64, error)
	Update(ctx context.Context, day *models.ItineraryDay) error
	InsertMany(ctx context.Context, days []models.ItineraryDay) error
}

// MongoDayStore keeps day documents in a single collection keyed by
// (origin_id, day_number, type).
type MongoDayStore struct {
	coll *mongo.Collection
}

func NewMongoDayStore(coll *mongo.Collection) *MongoDayStore {
	return &MongoDayStore{coll: coll}
}

func (s *MongoDayStore) Get(ctx context.Context, originID string, dayNumber int, dayType string) (*models.ItineraryDay, error) {
	filter := bson.M{"origin_id": originID, "day_number": dayNumber, "type": dayType}
	var day models.ItineraryDay
	err := s.coll.FindOne(ctx, filter).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("day not found")
	}
	if err != nil {
		return nil, apperr.Internal("error loading day", err)
	}
	return &day, nil
}

func (s *MongoDayStore) ListByOrigin(ctx context.Context, originID, dayType string) ([]models.ItineraryDay, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"origin_id": originID, "type": dayType})
	if err != nil {
		return nil, apperr.Internal("error listing days", err)
	}
	defer cursor.Close(ctx)

	days := []models.ItineraryDay{}
	if err := cursor.All(ctx, &days); err != nil {
		return nil, apperr.Internal("error decoding days", err)
	}
	return days, nil
}

func (s *MongoDayStore) CountByOrigin(ctx context.Context, originID, dayType string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"origin_id": originID, "type": dayType})
	if err != nil {
		return 0, apperr.Internal("error counting days", err)
	}
	return count, nil
}

// Update writes the mutated document, matching on the version the caller
// read. A zero match against an existing document means a concurrent
// writer won the race; the caller sees Conflict and may retry from a
// fresh read. On success the in-memory version is advanced to match.
func (s *MongoDayStore) Update(ctx context.Context, day *models.ItineraryDay) error {
	day.UpdatedAt = time.Now().Unix()
	filter := bson.M{"dayid": day.DayID, "version": day.Version}
	update := bson.M{
		"$set": bson.M{
			"title":         day.Title,
			"description":   day.Description,
			"notes":         day.Notes,
			"activities":    day.Activities,
			"day_total":     day.DayTotal,
			"user_modified": day.UserModified,
			"updatedAt":     day.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return apperr.Internal("error saving day", err)
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict("day was modified concurrently, please retry")
	}
	day.Version++
	return nil
}

func (s *MongoDayStore) InsertMany(ctx context.Context, days []models.ItineraryDay) error {
	docs := make([]interface{}, len(days))
	for i, d := range days {
		docs[i] = d
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return apperr.Internal("error inserting days", err)
	}
	return nil
}
