package calendar

import (
	"errors"
	"testing"
	"time"

	"vytara-server/internal/models"
)

var viewNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestView(host Host) *View {
	return NewView(host, viewNow, Options{Location: time.UTC, NewID: sequentialIDs()})
}

func cellFor(t *testing.T, mv MonthView, key string) CellView {
	t.Helper()
	for _, c := range mv.Cells {
		if c.Date == key {
			return c
		}
	}
	t.Fatalf("no cell for %s", key)
	return CellView{}
}

func TestViewStartsOnCurrentMonth(t *testing.T) {
	v := newTestView(newFakeHost())
	if v.Month() != (YearMonth{2024, time.March}) || v.Mode() != ModeIdle {
		t.Fatalf("month = %+v, mode = %s", v.Month(), v.Mode())
	}
}

func TestClickEmptyDayOpensAdd(t *testing.T) {
	v := newTestView(newFakeHost())
	if err := v.Click(viewNow, nil, "2024-03-15", ""); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if v.Mode() != ModeAdding || v.Selected() != "2024-03-15" {
		t.Fatalf("mode = %s, selected = %s", v.Mode(), v.Selected())
	}
	if v.Editor().Mode() != EditorCreate || v.Editor().Date() != "2024-03-15" {
		t.Errorf("editor = %s on %s", v.Editor().Mode(), v.Editor().Date())
	}
}

func TestClickToday(t *testing.T) {
	v := newTestView(newFakeHost())
	if err := v.Click(viewNow, nil, "2024-03-10", ""); err != nil {
		t.Fatalf("today should accept new appointments: %v", err)
	}
}

func TestClickPastDay(t *testing.T) {
	v := newTestView(newFakeHost())
	if err := v.Click(viewNow, nil, "2024-03-09", ""); !errors.Is(err, ErrPastDate) {
		t.Fatalf("Click past = %v, want ErrPastDate", err)
	}
	if v.Mode() != ModeIdle || v.Editor() != nil {
		t.Error("past click must not open a dialog")
	}

	past := []models.Appointment{{ID: "old", Date: "2024-03-01", Time: "09:00", Title: "Old visit", Type: models.TypeConsultation}}
	if err := v.Click(viewNow, past, "2024-03-01", "old"); err != nil {
		t.Fatalf("chips on past days stay clickable: %v", err)
	}
	if v.Mode() != ModeViewing {
		t.Errorf("mode = %s", v.Mode())
	}
}

func TestClickChipTakesPriority(t *testing.T) {
	appts := []models.Appointment{
		{ID: "a1", Date: "2024-03-15", Time: "10:00", Title: "Checkup", Type: models.TypeConsultation},
		{ID: "a2", Date: "2024-03-15", Time: "12:00", Title: "Scan", Type: models.TypeTestScan},
	}
	v := newTestView(newFakeHost())
	if err := v.Click(viewNow, appts, "2024-03-15", "a2"); err != nil {
		t.Fatalf("Click chip: %v", err)
	}
	if v.Mode() != ModeViewing {
		t.Fatalf("mode = %s, want viewing", v.Mode())
	}
	a, ok := v.Editor().Appointment()
	if !ok || a.ID != "a2" || v.Editor().Mode() != EditorView {
		t.Errorf("dialog shows %+v in %s", a, v.Editor().Mode())
	}
}

func TestClickErrors(t *testing.T) {
	v := newTestView(newFakeHost())
	if err := v.Click(viewNow, nil, "2024-3-15", ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("malformed date = %v", err)
	}
	if err := v.Click(viewNow, nil, "2024-03-15", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown chip = %v", err)
	}
	if err := v.BeginEdit(); !errors.Is(err, ErrNoDialog) {
		t.Errorf("BeginEdit without dialog = %v", err)
	}
	if err := v.Save(Draft{}); !errors.Is(err, ErrNoDialog) {
		t.Errorf("Save without dialog = %v", err)
	}
}

func TestNavigationKeepsDialog(t *testing.T) {
	v := newTestView(newFakeHost())
	_ = v.Click(viewNow, nil, "2024-03-20", "")
	v.NextMonth()
	if v.Month() != (YearMonth{2024, time.April}) || v.Mode() != ModeAdding {
		t.Errorf("after next: %+v %s", v.Month(), v.Mode())
	}
	v.PrevMonth()
	v.PrevMonth()
	if v.Month() != (YearMonth{2024, time.February}) {
		t.Errorf("after prev twice: %+v", v.Month())
	}
	v.GoToToday(viewNow)
	if v.Month() != (YearMonth{2024, time.March}) {
		t.Errorf("after today: %+v", v.Month())
	}
	v.Close()
	if v.Mode() != ModeIdle || v.Selected() != "" || v.Editor() != nil {
		t.Error("close should reset the selection")
	}
}

func TestViewSaveAndDelete(t *testing.T) {
	host := newFakeHost()
	v := newTestView(host)
	_ = v.Click(viewNow, nil, "2024-03-15", "")

	err := v.Save(Draft{Title: "", Time: "10:00"})
	if _, ok := fieldErrors(t, err)["title"]; !ok {
		t.Fatalf("expected title error, got %v", err)
	}
	if v.Mode() != ModeAdding {
		t.Fatal("failed save must keep the dialog open")
	}

	if err := v.Save(Draft{Title: "Checkup", Time: "10:00"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v.Mode() != ModeIdle {
		t.Errorf("mode after save = %s", v.Mode())
	}
	all := host.all(t)
	if len(all) != 1 || all[0].ID != "id-1" {
		t.Fatalf("stored %+v", all)
	}

	_ = v.Click(viewNow, all, "2024-03-15", "id-1")
	if err := v.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(host.all(t)) != 0 || v.Mode() != ModeIdle {
		t.Error("delete should remove and close")
	}
}

func TestForgetClosesMatchingDialog(t *testing.T) {
	appts := []models.Appointment{{ID: "a1", Date: "2024-03-15", Time: "11:00", Title: "Checkup", Type: models.TypeConsultation}}
	v := newTestView(newFakeHost())
	_ = v.Click(viewNow, appts, "2024-03-15", "a1")

	if v.Forget("other") || v.Mode() != ModeViewing {
		t.Fatal("Forget must leave dialogs for other appointments open")
	}
	if !v.Forget("a1") || v.Mode() != ModeIdle || v.Editor() != nil {
		t.Fatalf("mode = %s after Forget", v.Mode())
	}
	if err := v.Save(Draft{Title: "Edited", Time: "11:00"}); !errors.Is(err, ErrNoDialog) {
		t.Errorf("Save after Forget = %v", err)
	}

	_ = v.Click(viewNow, nil, "2024-03-16", "")
	if v.Forget("a1") || v.Mode() != ModeAdding {
		t.Error("create dialogs are not tied to an appointment")
	}
}

func TestRenderChips(t *testing.T) {
	appts := []models.Appointment{
		{ID: "1", Date: "2024-03-15", Time: "14:30", Title: "Afternoon"},
		{ID: "2", Date: "2024-03-15", Time: "09:00", Title: "Annual Checkup"},
		{ID: "3", Date: "2024-03-15", Time: "09:00", Title: "Blood test"},
		{ID: "4", Date: "2024-03-15", Time: "11:00", Title: "Dentist"},
		{ID: "5", Date: "2024-03-15", Time: "08:15", Title: "Early"},
		{ID: "6", Date: "2024-04-02", Time: "08:00", Title: "Next month"},
	}
	v := newTestView(newFakeHost())
	mv := v.Render(appts, viewNow)

	if mv.Title != "March 2024" || len(mv.Weekdays) != 7 {
		t.Errorf("title = %q, weekdays = %v", mv.Title, mv.Weekdays)
	}

	cell := cellFor(t, mv, "2024-03-15")
	if cell.Count != 5 || cell.More != 2 || len(cell.Chips) != 3 {
		t.Fatalf("count = %d, more = %d, chips = %d", cell.Count, cell.More, len(cell.Chips))
	}
	wantIDs := []string{"5", "2", "3"}
	for i, id := range wantIDs {
		if cell.Chips[i].ID != id {
			t.Errorf("chip %d = %s, want %s", i, cell.Chips[i].ID, id)
		}
	}
	if cell.Chips[1].Label != "Annual Che…" || cell.Chips[1].Title != "Annual Checkup" {
		t.Errorf("chip label = %q", cell.Chips[1].Label)
	}
	if cell.Chips[2].Label != "Blood test" {
		t.Errorf("ten-rune title should not be cut: %q", cell.Chips[2].Label)
	}

	for _, c := range mv.Cells {
		if c.Date == "2024-04-02" {
			t.Error("appointments outside the month must not render")
		}
	}
}

func TestRenderFlags(t *testing.T) {
	v := newTestView(newFakeHost())
	_ = v.Click(viewNow, nil, "2024-03-12", "")
	mv := v.Render(nil, viewNow)

	past := cellFor(t, mv, "2024-03-09")
	if !past.Past || past.CanAdd || past.Today {
		t.Errorf("past cell = %+v", past)
	}
	today := cellFor(t, mv, "2024-03-10")
	if !today.Today || !today.CanAdd || today.Past {
		t.Errorf("today cell = %+v", today)
	}
	if !cellFor(t, mv, "2024-03-12").Selected {
		t.Error("selected cell not flagged")
	}
	blanks := 0
	for _, c := range mv.Cells {
		if c.Blank {
			blanks++
		}
	}
	if blanks != GridCells-31 {
		t.Errorf("blank cells = %d", blanks)
	}
}

func TestRenderPastCellKeepsChips(t *testing.T) {
	v := newTestView(newFakeHost())
	past := []models.Appointment{{ID: "old", Date: "2024-03-01", Time: "09:00", Title: "Old visit", Type: models.TypeConsultation}}
	c := cellFor(t, v.Render(past, viewNow), "2024-03-01")
	if c.CanAdd {
		t.Error("past cell must not offer the add action")
	}
	if len(c.Chips) != 1 || c.Chips[0].ID != "old" {
		t.Errorf("chips = %+v", c.Chips)
	}
}

func TestSameDayOrdering(t *testing.T) {
	appts := []models.Appointment{
		{ID: "1", Date: "2024-03-15", Time: "09:00", Title: "one"},
		{ID: "2", Date: "2024-03-15", Time: "14:30", Title: "two"},
		{ID: "3", Date: "2024-03-15", Time: "09:00", Title: "three"},
	}
	mv := newTestView(newFakeHost()).Render(appts, viewNow)
	chips := cellFor(t, mv, "2024-03-15").Chips
	got := []string{chips[0].ID, chips[1].ID, chips[2].ID}
	want := []string{"1", "3", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Checkup", 10, "Checkup"},
		{"Physiotherapy", 10, "Physiother…"},
		{"日本語のテキスト", 3, "日本語…"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
