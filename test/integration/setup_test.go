//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ndpatients/patients/internal/domain/diagnosis"
	"github.com/ndpatients/patients/internal/domain/geography"
	"github.com/ndpatients/patients/internal/domain/medication"
	"github.com/ndpatients/patients/internal/domain/patient"
	"github.com/ndpatients/patients/internal/domain/treatment"
	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/migrations"
)

// Seeded reference rows from 001_reference.sql.
const (
	asthmaID        = "3d0b7e00-0000-4000-8001-000000000003"
	strepThroatID   = "3d0b7e00-0000-4000-8001-000000000002"
	rescueInhalerID = "9c2e4a00-0000-4000-8000-000000000003"
	antibioticTxID  = "9c2e4a00-0000-4000-8000-000000000002"
	analgesicTypeID = "6a3f1c00-0000-4000-8000-000000000001"
)

// testEnv holds the shared infrastructure for integration tests.
type testEnv struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// globalEnv is initialized once in TestMain.
var globalEnv *testEnv

func TestMain(m *testing.M) {
	ctx := context.Background()

	env, cleanup, err := setupEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up integration environment: %v\n", err)
		os.Exit(1)
	}

	globalEnv = env
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupEnv(ctx context.Context) (*testEnv, func(), error) {
	connStr, stopPG, err := startPostgres(ctx)
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{URL: connStr, MaxConns: 5, MinConns: 1, ApplicationName: "patients-integration"})
	if err != nil {
		stopPG()
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	if _, err := db.NewMigratorFS(pool, migrations.FS).Up(ctx); err != nil {
		pool.Close()
		stopPG()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	client, stopRedis, err := startRedis(ctx)
	if err != nil {
		pool.Close()
		stopPG()
		return nil, nil, err
	}

	return &testEnv{Pool: pool, Redis: client}, func() {
		stopRedis()
		pool.Close()
		stopPG()
	}, nil
}

// resetPatients removes patient data, leaving the seeded reference tables.
func resetPatients(t *testing.T) {
	t.Helper()
	_, err := globalEnv.Pool.Exec(context.Background(),
		`TRUNCATE patient_treatment, patient_diagnosis, patient CASCADE`)
	if err != nil {
		t.Fatalf("reset patients: %v", err)
	}
}

// services wires every domain service against the shared pool the same way
// the server does.
type services struct {
	geo        *geography.Service
	patients   *patient.Service
	diagnoses  *diagnosis.Service
	treatments *treatment.Service
	meds       *medication.Service
}

func newServices() *services {
	pool := globalEnv.Pool
	geo := geography.NewService(geography.NewCountryRepoPG(pool), geography.NewProvinceRepoPG(pool))
	pts := patient.NewService(patient.NewPatientRepoPG(pool), geo)
	dx := diagnosis.NewService(
		diagnosis.NewCategoryRepoPG(pool),
		diagnosis.NewDiagnosisRepoPG(pool),
		diagnosis.NewPatientDiagnosisRepoPG(pool),
		pts,
	)
	tx := treatment.NewService(treatment.NewTreatmentRepoPG(pool), treatment.NewPatientTreatmentRepoPG(pool), dx, dx)
	meds := medication.NewService(
		medication.NewTypeRepoPG(pool),
		medication.NewConcentrationUnitRepoPG(pool),
		medication.NewDispensingUnitRepoPG(pool),
		medication.NewMedicationRepoPG(pool),
	)
	return &services{geo: geo, patients: pts, diagnoses: dx, treatments: tx, meds: meds}
}

func ptrStr(s string) *string { return &s }

func ptrTime(t time.Time) *time.Time { return &t }

// createTestPatient stores a valid Ontario patient.
func createTestPatient(t *testing.T, ctx context.Context, svc *services, first, last string) *patient.Patient {
	t.Helper()
	p := &patient.Patient{
		FirstName:    first,
		LastName:     last,
		Gender:       "F",
		ProvinceCode: ptrStr("ON"),
		PostalCode:   ptrStr("n2l3g1"),
		DateOfBirth:  ptrTime(time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	if err := svc.patients.CreatePatient(ctx, p); err != nil {
		t.Fatalf("create test patient: %v", err)
	}
	return p
}
