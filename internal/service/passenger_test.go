package service

import (
	"context"
	"errors"
	"testing"

	"ridehail/internal/domain"
)

func validPassenger() *domain.Passenger {
	return &domain.Passenger{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+15550002222",
	}
}

func TestPassengerService_Create(t *testing.T) {
	repo := NewMockPassengerRepository()
	svc := NewPassengerService(repo)

	passenger, err := svc.Create(context.Background(), validPassenger())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if passenger.ID == 0 {
		t.Error("expected passenger to receive an id")
	}
}

func TestPassengerService_Create_DuplicateEmail(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Email: "jane@example.com", PhoneNumber: "+15559990000"})
	svc := NewPassengerService(repo)

	_, err := svc.Create(context.Background(), validPassenger())
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if err.Error() != "Passenger with email jane@example.com already exists" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if repo.CreateCallCount != 0 {
		t.Error("expected no create on duplicate email")
	}
}

func TestPassengerService_Create_DuplicatePhoneNumber(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Email: "other@example.com", PhoneNumber: "+15550002222"})
	svc := NewPassengerService(repo)

	_, err := svc.Create(context.Background(), validPassenger())
	if err == nil || err.Error() != "Passenger with phone number +15550002222 already exists" {
		t.Errorf("unexpected error: %v", err)
	}
}

// Email is checked before phone number, so when both collide the email
// message wins.
func TestPassengerService_Create_EmailCheckedFirst(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Email: "jane@example.com", PhoneNumber: "+15550002222"})
	svc := NewPassengerService(repo)

	_, err := svc.Create(context.Background(), validPassenger())
	if err == nil || err.Error() != "Passenger with email jane@example.com already exists" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPassengerService_Create_IgnoresSoftDeleted(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Email: "jane@example.com", PhoneNumber: "+15550002222", Deleted: true})
	svc := NewPassengerService(repo)

	if _, err := svc.Create(context.Background(), validPassenger()); err != nil {
		t.Fatalf("soft-deleted rows must not block reuse: %v", err)
	}
}

func TestPassengerService_Update_ExcludesSelfFromUniqueness(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Name: "Jane Doe", Email: "jane@example.com", PhoneNumber: "+15550002222"})
	svc := NewPassengerService(repo)

	updated := validPassenger()
	updated.Name = "Jane Q. Doe"

	result, err := svc.Update(context.Background(), 1, updated)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if result.Name != "Jane Q. Doe" {
		t.Errorf("expected updated name, got %s", result.Name)
	}
}

func TestPassengerService_Update_NotFound(t *testing.T) {
	repo := NewMockPassengerRepository()
	svc := NewPassengerService(repo)

	_, err := svc.Update(context.Background(), 8, validPassenger())
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != "Passenger with id = 8 not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestPassengerService_Delete_SoftDeletes(t *testing.T) {
	repo := NewMockPassengerRepository()
	repo.AddPassenger(&domain.Passenger{ID: 1, Email: "jane@example.com", PhoneNumber: "+15550002222"})
	svc := NewPassengerService(repo)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err := svc.GetByID(context.Background(), 1)
	if err == nil || err.Error() != "Passenger with id = 1 not found" {
		t.Errorf("deleted passenger must read as not found, got %v", err)
	}

	// A second delete finds nothing.
	err = svc.Delete(context.Background(), 1)
	if err == nil || err.Error() != "Passenger with id = 1 not found" {
		t.Errorf("unexpected error: %v", err)
	}
}
