package model

import (
	"testing"
	"time"
)

func TestCanTransitionHappyPath(t *testing.T) {
	steps := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusConfirmed, OrderStatusPreparing},
		{OrderStatusPreparing, OrderStatusReady},
		{OrderStatusReady, OrderStatusDelivered},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to be allowed", s.from, s.to)
		}
	}
	if !CanTransition(OrderStatusReady, OrderStatusPickedUp) {
		t.Fatalf("expected prete -> recuperee to be allowed")
	}
}

func TestCanTransitionNoSkips(t *testing.T) {
	forbidden := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusPreparing},
		{OrderStatusPending, OrderStatusReady},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusReady},
		{OrderStatusConfirmed, OrderStatusPending},
		{OrderStatusReady, OrderStatusConfirmed},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusConfirmed},
	}
	for _, s := range forbidden {
		if CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to be rejected", s.from, s.to)
		}
	}
}

func TestCancellableFromEveryNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if !CanTransition(from, OrderStatusCancelled) {
			t.Fatalf("expected %s to be cancellable", from)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCancelled} {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
	if OrderStatus("inconnu").IsTerminal() {
		t.Fatalf("unknown status must not be terminal")
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(OrderStatusPending) || !ValidStatus(OrderStatusCancelled) {
		t.Fatalf("known statuses must be valid")
	}
	if ValidStatus("livraison_en_cours") {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestCompletionStatus(t *testing.T) {
	if got := FulfillmentDelivery.CompletionStatus(); got != OrderStatusDelivered {
		t.Fatalf("delivery completes as %s", got)
	}
	if got := FulfillmentPickup.CompletionStatus(); got != OrderStatusPickedUp {
		t.Fatalf("pickup completes as %s", got)
	}
}

func TestStampTransition(t *testing.T) {
	at := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)
	var o Order

	o.StampTransition(OrderStatusConfirmed, at)
	if o.ConfirmedAt == nil || !o.ConfirmedAt.Equal(at) {
		t.Fatalf("confirmed stamp missing")
	}
	o.StampTransition(OrderStatusPreparing, at)
	if o.PreparingAt == nil {
		t.Fatalf("preparing stamp missing")
	}
	o.StampTransition(OrderStatusReady, at)
	if o.ReadyAt == nil {
		t.Fatalf("ready stamp missing")
	}
	o.StampTransition(OrderStatusDelivered, at)
	if o.CompletedAt == nil {
		t.Fatalf("completed stamp missing after delivery")
	}

	var picked Order
	picked.StampTransition(OrderStatusPickedUp, at)
	if picked.CompletedAt == nil {
		t.Fatalf("completed stamp missing after pickup")
	}

	var cancelled Order
	cancelled.StampTransition(OrderStatusCancelled, at)
	if cancelled.CancelledAt == nil {
		t.Fatalf("cancelled stamp missing")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.in, err)
		}
		if got != c.minutes {
			t.Fatalf("ParseClock(%q) = %d, want %d", c.in, got, c.minutes)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex(time.Monday) != 0 {
		t.Fatalf("monday must map to 0")
	}
	if WeekdayIndex(time.Sunday) != 6 {
		t.Fatalf("sunday must map to 6")
	}
	if WeekdayIndex(time.Wednesday) != 2 {
		t.Fatalf("wednesday must map to 2")
	}
}

func TestWeeklyScheduleValidate(t *testing.T) {
	var ok WeeklySchedule
	ok[0] = DaySchedule{Open: true, Intervals: []Interval{{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	var reversed WeeklySchedule
	reversed[1] = DaySchedule{Open: true, Intervals: []Interval{{Start: "18:00", End: "12:00"}}}
	if err := reversed.Validate(); err == nil {
		t.Fatalf("expected error for reversed interval")
	}

	var overlapping WeeklySchedule
	overlapping[2] = DaySchedule{Open: true, Intervals: []Interval{{Start: "09:00", End: "13:00"}, {Start: "12:00", End: "18:00"}}}
	if err := overlapping.Validate(); err == nil {
		t.Fatalf("expected error for overlapping intervals")
	}

	var garbage WeeklySchedule
	garbage[3] = DaySchedule{Open: true, Intervals: []Interval{{Start: "morning", End: "12:00"}}}
	if err := garbage.Validate(); err == nil {
		t.Fatalf("expected error for malformed clock value")
	}
}

func TestHasAnyOpening(t *testing.T) {
	var empty WeeklySchedule
	if empty.HasAnyOpening() {
		t.Fatalf("empty schedule has no opening")
	}

	var openNoIntervals WeeklySchedule
	openNoIntervals[4] = DaySchedule{Open: true}
	if openNoIntervals.HasAnyOpening() {
		t.Fatalf("open day without intervals counts as closed")
	}

	var some WeeklySchedule
	some[5] = DaySchedule{Open: true, Intervals: []Interval{{Start: "10:00", End: "22:00"}}}
	if !some.HasAnyOpening() {
		t.Fatalf("expected opening to be detected")
	}
}
