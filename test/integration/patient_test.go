//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndpatients/patients/internal/domain/patient"
	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/internal/validation"
)

func TestProvinceLookup(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	for code, want := range map[string]bool{"ON": true, " qc ": true, "NY": true, "ZZ": false, "": false} {
		got, err := svc.geo.ProvinceExists(ctx, code)
		if err != nil {
			t.Fatalf("ProvinceExists(%q): %v", code, err)
		}
		if got != want {
			t.Errorf("ProvinceExists(%q) = %v, want %v", code, got, want)
		}
	}

	provinces, err := svc.geo.ListProvinces(ctx, "CA")
	if err != nil {
		t.Fatalf("ListProvinces: %v", err)
	}
	if len(provinces) != 13 {
		t.Errorf("expected 13 Canadian provinces and territories, got %d", len(provinces))
	}
	if provinces[0].Name != "Alberta" {
		t.Errorf("expected provinces ordered by name, got %s first", provinces[0].Name)
	}
}

func TestPatientCRUD(t *testing.T) {
	ctx := context.Background()
	resetPatients(t)
	svc := newServices()

	t.Run("CreateNormalizes", func(t *testing.T) {
		p := &patient.Patient{
			FirstName:    "  mARY  ann ",
			LastName:     "o'neil",
			Gender:       "f",
			Address:      ptrStr("12 king st"),
			ProvinceCode: ptrStr("on"),
			PostalCode:   ptrStr("k1a0b1"),
			Ohip:         ptrStr("1234123123ab"),
			HomePhone:    ptrStr("6135550100"),
		}
		if err := svc.patients.CreatePatient(ctx, p); err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
		if p.ID == uuid.Nil {
			t.Fatal("expected ID after create")
		}

		fetched, err := svc.patients.GetPatient(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetPatient: %v", err)
		}
		if fetched.FullName() != "O'neil, Mary Ann" {
			t.Errorf("unexpected full name %q", fetched.FullName())
		}
		if *fetched.PostalCode != "K1A 0B1" || *fetched.Ohip != "1234-123-123-AB" || *fetched.HomePhone != "613-555-0100" {
			t.Errorf("unexpected normalized fields %q %q %q", *fetched.PostalCode, *fetched.Ohip, *fetched.HomePhone)
		}
		if fetched.Gender != "F" || *fetched.ProvinceCode != "ON" {
			t.Errorf("unexpected gender/province %q %q", fetched.Gender, *fetched.ProvinceCode)
		}
	})

	t.Run("ZipFallbackForUSState", func(t *testing.T) {
		p := &patient.Patient{
			FirstName:    "Sam",
			LastName:     "Rivera",
			Gender:       "X",
			ProvinceCode: ptrStr("NY"),
			PostalCode:   ptrStr("100011234"),
		}
		err := svc.patients.CreatePatient(ctx, p)
		var fe validation.FieldErrors
		if !errors.As(err, &fe) {
			t.Fatalf("expected FieldErrors, got %v", err)
		}
		if len(fe.ForField(validation.FieldPostalCode)) == 0 {
			t.Errorf("expected postal code errors to stand, got %v", fe)
		}
	})

	t.Run("RejectsUnknownProvince", func(t *testing.T) {
		p := &patient.Patient{FirstName: "A", LastName: "B", Gender: "M", ProvinceCode: ptrStr("ZZ")}
		err := svc.patients.CreatePatient(ctx, p)
		var fe validation.FieldErrors
		if !errors.As(err, &fe) {
			t.Fatalf("expected FieldErrors, got %v", err)
		}
		msgs := fe.ForField(validation.FieldProvinceCode)
		if len(msgs) != 1 || msgs[0] != validation.MsgProvinceNotOnFile {
			t.Errorf("unexpected province errors %v", msgs)
		}
	})

	t.Run("DuplicateOhip", func(t *testing.T) {
		a := &patient.Patient{FirstName: "Dup", LastName: "One", Gender: "M", Ohip: ptrStr("9999-888-777-ZZ")}
		if err := svc.patients.CreatePatient(ctx, a); err != nil {
			t.Fatalf("first create: %v", err)
		}
		b := &patient.Patient{FirstName: "Dup", LastName: "Two", Gender: "M", Ohip: ptrStr("9999888777zz")}
		if err := svc.patients.CreatePatient(ctx, b); !db.IsUniqueViolation(err) {
			t.Errorf("expected unique violation, got %v", err)
		}
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		p := createTestPatient(t, ctx, svc, "Lee", "Chan")
		dod := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
		p.Deceased = true
		p.DateOfDeath = &dod
		p.City = ptrStr("waterloo")
		if err := svc.patients.UpdatePatient(ctx, p); err != nil {
			t.Fatalf("UpdatePatient: %v", err)
		}
		fetched, _ := svc.patients.GetPatient(ctx, p.ID)
		if !fetched.Deceased || *fetched.City != "Waterloo" {
			t.Errorf("update not applied: %+v", fetched)
		}

		if err := svc.patients.DeletePatient(ctx, p.ID); err != nil {
			t.Fatalf("DeletePatient: %v", err)
		}
		if _, err := svc.patients.GetPatient(ctx, p.ID); !errors.Is(err, db.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestPatientListAndSearch(t *testing.T) {
	ctx := context.Background()
	resetPatients(t)
	svc := newServices()

	createTestPatient(t, ctx, svc, "Zoe", "Adams")
	createTestPatient(t, ctx, svc, "Amy", "Adams")
	createTestPatient(t, ctx, svc, "Bob", "Baker")

	items, total, err := svc.patients.ListPatients(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 patients, got %d", total)
	}
	got := []string{items[0].FullName(), items[1].FullName(), items[2].FullName()}
	want := []string{"Adams, Amy", "Adams, Zoe", "Baker, Bob"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}

	found, total, err := svc.patients.SearchPatients(ctx, map[string]string{"name": "ada"}, 10, 0)
	if err != nil {
		t.Fatalf("SearchPatients: %v", err)
	}
	if total != 2 || len(found) != 2 {
		t.Errorf("expected 2 Adams, got %d", total)
	}
}
