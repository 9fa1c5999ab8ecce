package calendar

import (
	"testing"
	"time"

	"mindbridge/internal/domain/event"
)

// TestViewState_ChangeMonth_YearRollover tests the December/January boundaries.
func TestViewState_ChangeMonth_YearRollover(t *testing.T) {
	v := ViewState{Month: 11, Year: 2025} // December
	v.ChangeMonth(1)
	if v.Month != 0 || v.Year != 2026 {
		t.Fatalf("Dec+1 = %d/%d, want 0/2026", v.Month, v.Year)
	}

	v = ViewState{Month: 0, Year: 2026} // January
	v.ChangeMonth(-1)
	if v.Month != 11 || v.Year != 2025 {
		t.Fatalf("Jan-1 = %d/%d, want 11/2025", v.Month, v.Year)
	}
}

// TestViewState_ChangeMonth_Inverse tests that +1 then -1 is the identity
// for every starting month.
func TestViewState_ChangeMonth_Inverse(t *testing.T) {
	for month := 0; month <= 11; month++ {
		v := ViewState{Month: month, Year: 2026}
		v.ChangeMonth(1)
		v.ChangeMonth(-1)
		if v.Month != month || v.Year != 2026 {
			t.Errorf("month %d: got %d/%d after +1/-1", month, v.Month, v.Year)
		}
	}
}

// TestViewState_ChangeMonth_ArbitraryDelta tests multi-month jumps.
func TestViewState_ChangeMonth_ArbitraryDelta(t *testing.T) {
	tests := []struct {
		startMonth, startYear int
		delta                 int
		wantMonth, wantYear   int
	}{
		{5, 2026, 12, 5, 2027},
		{5, 2026, -12, 5, 2025},
		{0, 2026, -1, 11, 2025},
		{10, 2026, 5, 3, 2027},
		{2, 2026, -27, 11, 2023},
		{7, 2026, 0, 7, 2026},
	}
	for _, tc := range tests {
		v := ViewState{Month: tc.startMonth, Year: tc.startYear}
		v.ChangeMonth(tc.delta)
		if v.Month != tc.wantMonth || v.Year != tc.wantYear {
			t.Errorf("%d/%d + %d = %d/%d, want %d/%d",
				tc.startMonth, tc.startYear, tc.delta, v.Month, v.Year, tc.wantMonth, tc.wantYear)
		}
		if v.Month < MinMonth || v.Month > MaxMonth {
			t.Errorf("month %d out of range after delta %d", v.Month, tc.delta)
		}
	}
}

// TestViewState_Title tests the month header.
func TestViewState_Title(t *testing.T) {
	v := ViewState{Month: 2, Year: 2026}
	if got := v.Title(); got != "March 2026" {
		t.Errorf("Title() = %q, want March 2026", got)
	}
}

// TestNew tests that the view starts on the current month.
func TestNew(t *testing.T) {
	v := New(time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC))
	if v.Month != 7 || v.Year != 2026 {
		t.Fatalf("New() = %d/%d, want 7/2026", v.Month, v.Year)
	}
	if v.SelectedDate != "" {
		t.Fatal("new view should have no selection")
	}
}

// TestViewState_VisibleEvents_Default tests the upcoming-and-active filter.
func TestViewState_VisibleEvents_Default(t *testing.T) {
	events := []event.Event{
		{ID: "a", Date: "2024-03-10", Active: true},
		{ID: "b", Date: "2024-03-05", Active: false},
	}
	v := ViewState{Month: 2, Year: 2024}
	got := v.VisibleEvents(events, "2024-03-01")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("default filter = %+v, want only event a", got)
	}
}

// TestViewState_VisibleEvents_SortedStable tests ascending date order with
// input order preserved for same-date events.
func TestViewState_VisibleEvents_SortedStable(t *testing.T) {
	events := []event.Event{
		{ID: "late", Date: "2026-09-20", Active: true},
		{ID: "first", Date: "2026-09-05", Active: true},
		{ID: "second", Date: "2026-09-05", Active: true},
	}
	v := ViewState{}
	got := v.VisibleEvents(events, "2026-09-01")
	want := []string{"first", "second", "late"}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

// TestViewState_VisibleEvents_Selection tests that a selected date overrides
// the default filter, including past and inactive events.
func TestViewState_VisibleEvents_Selection(t *testing.T) {
	events := []event.Event{
		{ID: "past-inactive", Date: "2024-02-01", Active: false},
		{ID: "upcoming", Date: "2024-03-10", Active: true},
	}
	v := ViewState{}
	v.SelectDate("2024-02-01")
	got := v.VisibleEvents(events, "2024-03-01")
	if len(got) != 1 || got[0].ID != "past-inactive" {
		t.Fatalf("selection filter = %+v, want only past-inactive", got)
	}

	// Clearing the selection restores the default filter, whatever was selected.
	v.ClearSelection()
	got = v.VisibleEvents(events, "2024-03-01")
	if len(got) != 1 || got[0].ID != "upcoming" {
		t.Fatalf("after clear = %+v, want only upcoming", got)
	}
}

// TestViewState_SelectDate_ReplacesPrevious tests single-selection semantics.
func TestViewState_SelectDate_ReplacesPrevious(t *testing.T) {
	v := ViewState{}
	v.SelectDate("2026-01-01")
	v.SelectDate("2026-02-02")
	if v.SelectedDate != "2026-02-02" {
		t.Fatalf("SelectedDate = %q, want 2026-02-02", v.SelectedDate)
	}
}
