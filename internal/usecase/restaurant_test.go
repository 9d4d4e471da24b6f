package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	testhelpers "github.com/restoflow/restoflow/internal/test"
)

func newRestaurantUseCase(repo *testhelpers.RestaurantRepositoryStub) *RestaurantUseCase {
	uc := NewRestaurantUseCase(repo)
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestRestaurantListFiltersInactive(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{
			{ID: 1, Name: "Ouvert", Active: true},
			{ID: 2, Name: "Ferme", Active: false},
			{ID: 3, Name: "Aussi ouvert", Active: true},
		},
	}
	uc := newRestaurantUseCase(repo)

	restaurants, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(restaurants) != 2 {
		t.Fatalf("expected 2 active restaurants, got %d", len(restaurants))
	}
	for _, r := range restaurants {
		if !r.Active {
			t.Fatalf("inactive restaurant leaked: %+v", r)
		}
	}
}

func TestRestaurantGetByIDHidesInactive(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{{ID: 2, Active: false}},
	}
	uc := newRestaurantUseCase(repo)

	if _, err := uc.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRestaurantAvailabilityOpen(t *testing.T) {
	r := &model.Restaurant{ID: 1, Active: true, Schedule: openAllWeek()}
	uc := newRestaurantUseCase(&testhelpers.RestaurantRepositoryStub{})

	av := uc.AvailabilityOf(r)
	if !av.IsOpen {
		t.Fatalf("expected open")
	}
	if av.ClosesAt == nil {
		t.Fatalf("expected closing time")
	}
	want := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	if !av.ClosesAt.Equal(want) {
		t.Fatalf("expected closing at %s, got %s", want, av.ClosesAt)
	}
	if av.NextOpening != nil {
		t.Fatalf("open restaurant reports no next opening")
	}
}

func TestRestaurantAvailabilityClosed(t *testing.T) {
	var ws model.WeeklySchedule
	ws[0] = model.DaySchedule{Open: true, Intervals: []model.Interval{{Start: "18:30", End: "22:00"}}}
	r := &model.Restaurant{ID: 1, Active: true, Schedule: &ws}
	uc := newRestaurantUseCase(&testhelpers.RestaurantRepositoryStub{})

	av := uc.AvailabilityOf(r)
	if av.IsOpen {
		t.Fatalf("expected closed at %s", testNow)
	}
	if av.NextOpening == nil {
		t.Fatalf("expected next opening")
	}
	if av.NextOpening.Start != "18:30" || !av.NextOpening.IsToday {
		t.Fatalf("unexpected next opening %+v", av.NextOpening)
	}
}

func TestRestaurantAvailabilityNoSchedule(t *testing.T) {
	uc := newRestaurantUseCase(&testhelpers.RestaurantRepositoryStub{})

	open := uc.AvailabilityOf(&model.Restaurant{ID: 1, Active: true})
	if !open.IsOpen {
		t.Fatalf("restaurant without schedule is open by default")
	}

	closed := uc.AvailabilityOf(&model.Restaurant{ID: 1, Active: true, ExceptionalClosure: true})
	if closed.IsOpen {
		t.Fatalf("exceptional closure wins even without a schedule")
	}
}

func TestRestaurantUpdateSchedule(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{{ID: 1, OwnerID: 10, Active: true}},
	}
	uc := newRestaurantUseCase(repo)
	owner := model.Actor{UserID: 10, Role: model.RoleRestaurateur}
	ctx := context.Background()

	if err := uc.UpdateSchedule(ctx, 1, *openAllWeek(), owner); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(repo.ScheduleUpdates) != 1 {
		t.Fatalf("expected schedule persisted")
	}

	var reversed model.WeeklySchedule
	reversed[0] = model.DaySchedule{Open: true, Intervals: []model.Interval{{Start: "18:00", End: "09:00"}}}
	if err := uc.UpdateSchedule(ctx, 1, reversed, owner); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	var allClosed model.WeeklySchedule
	if err := uc.UpdateSchedule(ctx, 1, allClosed, owner); !errors.Is(err, domainErrors.ErrNoOpeningFound) {
		t.Fatalf("expected ErrNoOpeningFound, got %v", err)
	}

	stranger := model.Actor{UserID: 99, Role: model.RoleRestaurateur}
	if err := uc.UpdateSchedule(ctx, 1, *openAllWeek(), stranger); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	customer := model.Actor{UserID: 10, Role: model.RoleCustomer}
	if err := uc.UpdateSchedule(ctx, 1, *openAllWeek(), customer); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}
}

func TestRestaurantSetExceptionalClosure(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{{ID: 1, OwnerID: 10, Active: true}},
	}
	uc := newRestaurantUseCase(repo)
	ctx := context.Background()

	if err := uc.SetExceptionalClosure(ctx, 1, true, model.Actor{UserID: 10, Role: model.RoleRestaurateur}); err != nil {
		t.Fatalf("closure failed: %v", err)
	}
	if len(repo.ClosureUpdates) != 1 || !repo.ClosureUpdates[0] {
		t.Fatalf("expected closure persisted")
	}

	if err := uc.SetExceptionalClosure(ctx, 1, true, model.Actor{UserID: 5, Role: model.RoleCustomer}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.SetExceptionalClosure(ctx, 1, false, model.Actor{UserID: 1, Role: model.RoleAdmin}); err != nil {
		t.Fatalf("admin closure failed: %v", err)
	}
}

func TestRestaurantSetDishAvailability(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{{ID: 1, OwnerID: 10, Active: true}},
		Dishes:      []model.Dish{{ID: 4, RestaurantID: 1, Available: true}},
	}
	uc := newRestaurantUseCase(repo)
	owner := model.Actor{UserID: 10, Role: model.RoleRestaurateur}

	if err := uc.SetDishAvailability(context.Background(), 1, 4, false, owner); err != nil {
		t.Fatalf("set availability failed: %v", err)
	}
	if repo.Dishes[0].Available {
		t.Fatalf("dish should be unavailable")
	}
	if err := uc.SetDishAvailability(context.Background(), 1, 99, false, owner); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown dish, got %v", err)
	}
}

func TestRestaurantAuthorizeOwner(t *testing.T) {
	repo := &testhelpers.RestaurantRepositoryStub{
		Restaurants: []model.Restaurant{{ID: 1, OwnerID: 10, Active: true}},
	}
	uc := newRestaurantUseCase(repo)
	ctx := context.Background()

	if err := uc.AuthorizeOwner(ctx, 1, model.Actor{UserID: 10, Role: model.RoleRestaurateur}); err != nil {
		t.Fatalf("owner must pass: %v", err)
	}
	if err := uc.AuthorizeOwner(ctx, 1, model.Actor{UserID: 2, Role: model.RoleAdmin}); err != nil {
		t.Fatalf("admin must pass: %v", err)
	}
	if err := uc.AuthorizeOwner(ctx, 1, model.Actor{UserID: 3, Role: model.RoleRestaurateur}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
