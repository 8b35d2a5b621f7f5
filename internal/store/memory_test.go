package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"vytara-server/internal/models"
)

func appt(id, date, at, title string) models.Appointment {
	return models.Appointment{ID: id, Date: date, Time: at, Title: title, Type: models.TypeConsultation}
}

func TestMemoryStoreUpsertReplacesByID(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Upsert(appt("x", "2024-03-15", "10:00", "first"))
	_ = s.Upsert(appt("y", "2024-03-15", "11:00", "other"))
	_ = s.Upsert(appt("x", "2024-03-16", "12:00", "second"))

	all, _ := s.All()
	if len(all) != 2 {
		t.Fatalf("want 2 records, got %d", len(all))
	}
	if all[0].ID != "x" || all[0].Title != "second" || all[0].Date != "2024-03-16" {
		t.Errorf("upsert should replace in place, got %+v", all[0])
	}
}

func TestMemoryStoreByDateKey(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Upsert(appt("1", "2024-03-15", "10:00", "a"))
	_ = s.Upsert(appt("2", "2024-03-16", "10:00", "b"))
	_ = s.Upsert(appt("3", "2024-03-15", "08:00", "c"))

	day, _ := s.ByDateKey("2024-03-15")
	if len(day) != 2 || day[0].ID != "1" || day[1].ID != "3" {
		t.Fatalf("ByDateKey = %+v", day)
	}
	empty, _ := s.ByDateKey("2024-01-01")
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty day should be an empty slice, got %#v", empty)
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Upsert(appt("1", "2024-03-15", "10:00", "a"))
	_ = s.Upsert(appt("2", "2024-03-15", "11:00", "b"))

	if err := s.Remove("missing"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	_ = s.Remove("1")
	all, _ := s.All()
	if len(all) != 1 || all[0].ID != "2" {
		t.Fatalf("after remove: %+v", all)
	}
}

func TestMemoryStoreAllReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Upsert(appt("1", "2024-03-15", "10:00", "a"))
	all, _ := s.All()
	all[0].Title = "mutated"
	again, _ := s.All()
	if again[0].Title != "a" {
		t.Error("All must not expose internal storage")
	}
}

func TestMemoryStoreConcurrentUpserts(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Upsert(appt(fmt.Sprintf("id-%d", i%10), "2024-03-15", "10:00", "t"))
		}(i)
	}
	wg.Wait()
	all, _ := s.All()
	if len(all) != 10 {
		t.Errorf("want 10 distinct ids, got %d", len(all))
	}
}

func TestSortByTimeIsStable(t *testing.T) {
	day := []models.Appointment{
		appt("1", "2024-03-15", "09:00", ""),
		appt("2", "2024-03-15", "14:30", ""),
		appt("3", "2024-03-15", "09:00", ""),
	}
	SortByTime(day)
	got := day[0].ID + day[1].ID + day[2].ID
	if got != "132" {
		t.Errorf("order = %s, want 132", got)
	}
}

func TestSortByDateTime(t *testing.T) {
	list := []models.Appointment{
		appt("a", "2024-03-16", "08:00", ""),
		appt("b", "2024-03-15", "17:00", ""),
		appt("c", "2024-03-15", "07:45", ""),
		appt("d", "2023-12-31", "23:59", ""),
	}
	SortByDateTime(list)
	got := list[0].ID + list[1].ID + list[2].ID + list[3].ID
	if got != "dcba" {
		t.Errorf("order = %s, want dcba", got)
	}
}

func TestMemoryProvider(t *testing.T) {
	p := NewMemoryProvider()
	alice := p.ForUser("alice")
	_ = alice.Upsert(appt("1", "2024-03-15", "10:00", "a"))

	if p.ForUser("alice") != alice {
		t.Error("ForUser should return the same store")
	}
	bob, _ := p.ForUser("bob").All()
	if len(bob) != 0 {
		t.Error("stores must be per user")
	}

	p.Discard("alice")
	again, _ := p.ForUser("alice").All()
	if len(again) != 0 {
		t.Error("Discard should drop the user's appointments")
	}
}

func TestMemoryAccounts(t *testing.T) {
	s := NewMemoryAccounts()
	if err := s.Create(models.Account{Username: "alice", Email: "a@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(models.Account{Username: "alice"}); !errors.Is(err, ErrAccountExists) {
		t.Errorf("duplicate Create = %v", err)
	}
	acc, ok, err := s.Get("alice")
	if err != nil || !ok || acc.Email != "a@example.com" {
		t.Errorf("Get = %+v, %v, %v", acc, ok, err)
	}
	if _, ok, _ := s.Get("bob"); ok {
		t.Error("unknown username reported as present")
	}
}
