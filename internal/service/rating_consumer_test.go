package service

import (
	"context"
	"encoding/json"
	"testing"

	"ridehail/internal/domain"
)

func seedEventBody(t *testing.T, event domain.RatingSeedEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return body
}

func TestRatingConsumer_SeedsSkeletonRating(t *testing.T) {
	repo := NewMockRatingRepository()
	consumer := NewRatingConsumer(repo)

	body := seedEventBody(t, domain.RatingSeedEvent{
		SchemaVersion: domain.RatingSeedSchemaVersion,
		MessageID:     "m-1",
		DriverID:      1,
		PassengerID:   2,
		RideID:        3,
	})

	if err := consumer.HandleMessage(context.Background(), body); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if repo.CountRatings() != 1 {
		t.Fatalf("expected 1 rating, got %d", repo.CountRatings())
	}
	rating, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if rating.DriverID != 1 || rating.UserID != 2 || rating.RideID != 3 {
		t.Errorf("unexpected skeleton rating: %+v", rating)
	}
	if rating.DriverRating != nil || rating.PassengerRating != nil || rating.Comment != nil {
		t.Error("skeleton rating must have empty scores and comment")
	}
}

// Redelivery of the same event must not create a second row.
func TestRatingConsumer_RedeliveryIsIdempotent(t *testing.T) {
	repo := NewMockRatingRepository()
	consumer := NewRatingConsumer(repo)

	body := seedEventBody(t, domain.RatingSeedEvent{
		SchemaVersion: domain.RatingSeedSchemaVersion,
		MessageID:     "m-1",
		DriverID:      1,
		PassengerID:   2,
		RideID:        3,
	})

	for i := 0; i < 3; i++ {
		if err := consumer.HandleMessage(context.Background(), body); err != nil {
			t.Fatalf("HandleMessage returned error on delivery %d: %v", i+1, err)
		}
	}

	if repo.CountRatings() != 1 {
		t.Errorf("expected 1 rating after redelivery, got %d", repo.CountRatings())
	}
	if repo.UpsertCallCount != 3 {
		t.Errorf("expected 3 upsert calls, got %d", repo.UpsertCallCount)
	}
}

func TestRatingConsumer_MalformedPayload(t *testing.T) {
	repo := NewMockRatingRepository()
	consumer := NewRatingConsumer(repo)

	err := consumer.HandleMessage(context.Background(), []byte("not json"))
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if repo.UpsertCallCount != 0 {
		t.Error("expected no upsert for malformed payload")
	}
}

func TestRatingConsumer_UnsupportedSchemaVersion(t *testing.T) {
	repo := NewMockRatingRepository()
	consumer := NewRatingConsumer(repo)

	body := seedEventBody(t, domain.RatingSeedEvent{
		SchemaVersion: domain.RatingSeedSchemaVersion + 1,
		MessageID:     "m-1",
		DriverID:      1,
		PassengerID:   2,
		RideID:        3,
	})

	err := consumer.HandleMessage(context.Background(), body)
	if err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
	if repo.UpsertCallCount != 0 {
		t.Error("expected no upsert for unsupported schema version")
	}
}
