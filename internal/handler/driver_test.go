package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

type stubDriverRepo struct {
	drivers map[int64]*domain.Driver
	nextID  int64
}

func newStubDriverRepo() *stubDriverRepo {
	return &stubDriverRepo{drivers: make(map[int64]*domain.Driver)}
}

func (s *stubDriverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	s.nextID++
	driver.ID = s.nextID
	s.drivers[driver.ID] = driver
	return nil
}

func (s *stubDriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	driver, ok := s.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (s *stubDriverRepo) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Driver], error) {
	result := repository.Page[*domain.Driver]{Page: page.Page, Size: page.Size}
	for _, d := range s.drivers {
		copy := *d
		result.Items = append(result.Items, &copy)
	}
	result.TotalItems = int64(len(result.Items))
	return result, nil
}

func (s *stubDriverRepo) Update(ctx context.Context, driver *domain.Driver) error {
	if _, ok := s.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	s.drivers[driver.ID] = driver
	return nil
}

func (s *stubDriverRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.drivers, id)
	return nil
}

func (s *stubDriverRepo) PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error) {
	for _, d := range s.drivers {
		if d.PhoneNumber == phoneNumber && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubDriverRepo) CarNumberExists(ctx context.Context, number string, excludeDriverID int64) (bool, error) {
	for _, d := range s.drivers {
		if d.ID == excludeDriverID {
			continue
		}
		for _, car := range d.Cars {
			if car.Number == number {
				return true, nil
			}
		}
	}
	return false, nil
}

func newDriverTestRouter(t *testing.T) (*stubDriverRepo, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubDriverRepo()
	h := NewDriverHandler(service.NewDriverService(repo))

	router := gin.New()
	drivers := router.Group("/api/v1/driver")
	{
		drivers.GET("", h.GetAll)
		drivers.GET("/:id", h.Get)
		drivers.POST("", h.Create)
		drivers.PUT("/:id", h.Update)
		drivers.DELETE("/:id", h.Delete)
	}
	return repo, router
}

func TestDriverHandler_Create(t *testing.T) {
	_, router := newDriverTestRouter(t)

	body := `{"name": "John Doe", "phoneNumber": "+15550001111", "cars": [{"number": "AB123CD", "model": "Toyota Prius", "color": "blue"}]}`
	w := doJSON(t, router, http.MethodPost, "/api/v1/driver", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp DriverResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == 0 {
		t.Error("expected driver id in response")
	}
	if len(resp.Cars) != 1 || resp.Cars[0].Number != "AB123CD" {
		t.Errorf("unexpected cars: %+v", resp.Cars)
	}
}

func TestDriverHandler_Create_DuplicatePhoneNumber(t *testing.T) {
	repo, router := newDriverTestRouter(t)
	repo.drivers[1] = &domain.Driver{ID: 1, PhoneNumber: "+15550001111"}
	repo.nextID = 1

	body := `{"name": "John Doe", "phoneNumber": "+15550001111"}`
	w := doJSON(t, router, http.MethodPost, "/api/v1/driver", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Message != "Driver with phone number +15550001111 already exists" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestDriverHandler_Get_NotFound(t *testing.T) {
	_, router := newDriverTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/driver/3", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Message != "Driver with id = 3 not found" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestDriverHandler_Create_MissingName(t *testing.T) {
	_, router := newDriverTestRouter(t)

	body := `{"phoneNumber": "+15550001111"}`
	w := doJSON(t, router, http.MethodPost, "/api/v1/driver", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp ViolationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Violations) != 1 || resp.Violations[0].FieldName != "name" {
		t.Fatalf("unexpected violations: %+v", resp.Violations)
	}
	if resp.Violations[0].Message != "must not be blank" {
		t.Errorf("unexpected message: %s", resp.Violations[0].Message)
	}
}
