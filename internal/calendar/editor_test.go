package calendar

import (
	"errors"
	"fmt"
	"testing"

	"vytara-server/internal/models"
	"vytara-server/internal/store"
	"vytara-server/internal/validate"
)

// fakeHost records callbacks and keeps the collection in a memory store.
type fakeHost struct {
	store   *store.MemoryStore
	adds    int
	deletes int
}

func newFakeHost() *fakeHost {
	return &fakeHost{store: store.NewMemoryStore()}
}

func (h *fakeHost) AddAppointment(a models.Appointment) error {
	h.adds++
	return h.store.Upsert(a)
}

func (h *fakeHost) DeleteAppointment(id string) error {
	h.deletes++
	return h.store.Remove(id)
}

func (h *fakeHost) all(t *testing.T) []models.Appointment {
	t.Helper()
	all, err := h.store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	return all
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var fe *validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected *validate.FieldErrors, got %v", err)
	}
	return fe.Fields
}

func TestCreateEditorDefaults(t *testing.T) {
	e := NewCreateEditor(newFakeHost(), "2024-03-15", nil)
	if e.Mode() != EditorCreate {
		t.Errorf("Mode = %s", e.Mode())
	}
	if e.Date() != "2024-03-15" {
		t.Errorf("Date = %s", e.Date())
	}
	if e.Draft().Type != models.TypeConsultation {
		t.Errorf("default type = %s", e.Draft().Type)
	}
	if !e.ShowProviderFields() {
		t.Error("provider fields should show for consultation")
	}
	if _, ok := e.Appointment(); ok {
		t.Error("create editor should have no appointment")
	}
}

func TestCreateEditorSave(t *testing.T) {
	host := newFakeHost()
	e := NewCreateEditor(host, "2024-03-15", sequentialIDs())
	if err := e.SetDraft(Draft{Title: "  Checkup ", Time: "10:00", Doctor: "Dr. Rao", Facility: "City Clinic"}); err != nil {
		t.Fatalf("SetDraft: %v", err)
	}
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all := host.all(t)
	if host.adds != 1 || len(all) != 1 {
		t.Fatalf("adds = %d, stored = %d", host.adds, len(all))
	}
	got := all[0]
	if got.ID != "id-1" || got.Date != "2024-03-15" || got.Title != "Checkup" || got.Type != models.TypeConsultation {
		t.Errorf("stored %+v", got)
	}
	if got.Doctor != "Dr. Rao" || got.Facility != "City Clinic" {
		t.Errorf("provider fields lost: %+v", got)
	}
	if !e.Done() {
		t.Error("editor should be done after save")
	}
}

func TestEditorValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"blank title", Draft{Title: "   ", Time: "10:00"}, "title"},
		{"missing time", Draft{Title: "Scan"}, "time"},
		{"unpadded time", Draft{Title: "Scan", Time: "9:00"}, "time"},
		{"out of range time", Draft{Title: "Scan", Time: "24:00"}, "time"},
		{"unknown type", Draft{Title: "Scan", Time: "09:00", Type: "surgery"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			e := NewCreateEditor(host, "2024-03-15", nil)
			if err := e.SetDraft(tt.draft); err != nil {
				t.Fatalf("SetDraft: %v", err)
			}
			fields := fieldErrors(t, e.Save())
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected error on %q, got %v", tt.field, fields)
			}
			if host.adds != 0 {
				t.Error("invalid draft must not reach the host")
			}
			if e.Done() {
				t.Error("editor must stay open")
			}
		})
	}
}

func TestOtherTypeDropsProvider(t *testing.T) {
	host := newFakeHost()
	e := NewCreateEditor(host, "2024-03-20", nil)
	_ = e.SetDraft(Draft{Title: "Pharmacy", Time: "18:00", Type: models.TypeOther, Doctor: "x", Facility: "y"})
	if e.ShowProviderFields() {
		t.Error("provider fields should hide for other")
	}
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := host.all(t)[0]
	if got.Doctor != "" || got.Facility != "" {
		t.Errorf("provider fields kept for other: %+v", got)
	}
}

func TestSetTypeClearsProvider(t *testing.T) {
	e := NewCreateEditor(newFakeHost(), "2024-03-20", nil)
	_ = e.SetDraft(Draft{Title: "MRI", Time: "08:00", Doctor: "Dr. Sen", Facility: "Apollo"})
	if err := e.SetType(models.TypeTestScan); err != nil {
		t.Fatalf("SetType: %v", err)
	}
	d := e.Draft()
	if d.Type != models.TypeTestScan || d.Doctor != "" || d.Facility != "" {
		t.Errorf("draft after SetType = %+v", d)
	}
}

func TestDetailEditorTransitions(t *testing.T) {
	host := newFakeHost()
	orig := models.Appointment{ID: "a1", Date: "2024-03-15", Time: "10:00", Title: "Checkup", Type: models.TypeConsultation}
	_ = host.store.Upsert(orig)

	e := NewDetailEditor(host, orig)
	if e.Mode() != EditorView {
		t.Fatalf("Mode = %s", e.Mode())
	}
	if err := e.SetDraft(Draft{Title: "x"}); !errors.Is(err, ErrWrongMode) {
		t.Errorf("SetDraft in view = %v", err)
	}
	if err := e.Save(); !errors.Is(err, ErrWrongMode) {
		t.Errorf("Save in view = %v", err)
	}
	if err := e.Cancel(); !errors.Is(err, ErrWrongMode) {
		t.Errorf("Cancel in view = %v", err)
	}

	if err := e.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	_ = e.SetDraft(Draft{Title: "Changed", Time: "11:00", Type: models.TypeFollowUp})
	if err := e.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if e.Mode() != EditorView || e.Draft().Title != "Checkup" {
		t.Errorf("cancel should restore view of the original, got %s %+v", e.Mode(), e.Draft())
	}
	if host.adds != 0 {
		t.Error("cancel must not save")
	}
}

func TestEditSaveReplacesByID(t *testing.T) {
	host := newFakeHost()
	orig := models.Appointment{ID: "a1", Date: "2024-03-15", Time: "10:00", Title: "Checkup", Type: models.TypeConsultation}
	_ = host.store.Upsert(orig)

	e := NewDetailEditor(host, orig)
	_ = e.BeginEdit()
	_ = e.SetDraft(Draft{Title: "Follow-up visit", Time: "11:30", Type: models.TypeFollowUp})
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all := host.all(t)
	if len(all) != 1 {
		t.Fatalf("want exactly one record, got %d", len(all))
	}
	got := all[0]
	if got.ID != "a1" || got.Date != "2024-03-15" || got.Title != "Follow-up visit" || got.Time != "11:30" {
		t.Errorf("stored %+v", got)
	}
}

func TestEditorDelete(t *testing.T) {
	host := newFakeHost()
	orig := models.Appointment{ID: "a1", Date: "2024-03-15", Time: "10:00", Title: "Checkup", Type: models.TypeConsultation}
	_ = host.store.Upsert(orig)

	if err := NewCreateEditor(host, "2024-03-15", nil).Delete(); !errors.Is(err, ErrWrongMode) {
		t.Errorf("Delete in create = %v", err)
	}

	e := NewDetailEditor(host, orig)
	if err := e.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if host.deletes != 1 || len(host.all(t)) != 0 {
		t.Errorf("deletes = %d, remaining = %d", host.deletes, len(host.all(t)))
	}
}

func TestCheckupScenario(t *testing.T) {
	host := newFakeHost()
	e := NewCreateEditor(host, "2024-03-15", nil)
	_ = e.SetDraft(Draft{Title: "Checkup", Time: "10:00", Type: models.TypeConsultation})
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	day, _ := host.store.ByDateKey("2024-03-15")
	if len(day) != 1 || day[0].Title != "Checkup" {
		t.Fatalf("ByDateKey after create = %+v", day)
	}

	if err := NewDetailEditor(host, day[0]).Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	day, _ = host.store.ByDateKey("2024-03-15")
	if len(day) != 0 {
		t.Fatalf("ByDateKey after delete = %+v", day)
	}
}
