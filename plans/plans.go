package plans

import (
	"context"
	"errors"

	"voyago/apperr"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store answers "does this origin id refer to a real plan" and hands out a
// plan's day list for customization seeding. Tours are checked before AI
// plans; an origin id is valid if either collection knows it.
type Store struct {
	tours   *mongo.Collection
	aiPlans *mongo.Collection
}

func NewStore(tours, aiPlans *mongo.Collection) *Store {
	return &Store{tours: tours, aiPlans: aiPlans}
}

func (s *Store) PlanExists(ctx context.Context, originID string) (bool, error) {
	count, err := s.tours.CountDocuments(ctx, bson.M{"tourid": originID})
	if err != nil {
		return false, apperr.Internal("error checking tour", err)
	}
	if count > 0 {
		return true, nil
	}
	count, err = s.aiPlans.CountDocuments(ctx, bson.M{"planid": originID})
	if err != nil {
		return false, apperr.Internal("error checking plan", err)
	}
	return count > 0, nil
}

func (s *Store) PlanDays(ctx context.Context, originID string) ([]models.PlanDay, error) {
	var tour models.TourPlan
	err := s.tours.FindOne(ctx, bson.M{"tourid": originID}).Decode(&tour)
	if err == nil {
		return tour.Days, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Internal("error loading tour", err)
	}

	var plan models.AIPlan
	err = s.aiPlans.FindOne(ctx, bson.M{"planid": originID}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("plan not found")
	}
	if err != nil {
		return nil, apperr.Internal("error loading plan", err)
	}
	return plan.Days, nil
}

func (s *Store) GetTour(ctx context.Context, tourID string) (*models.TourPlan, error) {
	var tour models.TourPlan
	err := s.tours.FindOne(ctx, bson.M{"tourid": tourID}).Decode(&tour)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("tour not found")
	}
	if err != nil {
		return nil, apperr.Internal("error loading tour", err)
	}
	return &tour, nil
}

func (s *Store) InsertTour(ctx context.Context, tour *models.TourPlan) error {
	if _, err := s.tours.InsertOne(ctx, tour); err != nil {
		return apperr.Internal("error inserting tour", err)
	}
	return nil
}
