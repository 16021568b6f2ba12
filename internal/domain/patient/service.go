package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndpatients/patients/internal/platform/metrics"
	"github.com/ndpatients/patients/internal/validation"
)

// ProvinceChecker is the province lookup used during validation.
type ProvinceChecker interface {
	ProvinceExists(ctx context.Context, code string) (bool, error)
}

type Service struct {
	repo      PatientRepository
	provinces ProvinceChecker
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewService(repo PatientRepository, provinces ProvinceChecker) *Service {
	return &Service{
		repo:      repo,
		provinces: provinces,
		validator: validation.New(),
		logger:    zerolog.Nop(),
	}
}

func (s *Service) SetValidator(v *validation.Validator) { s.validator = v }
func (s *Service) SetMetrics(m *metrics.Metrics)        { s.metrics = m }
func (s *Service) SetLogger(l zerolog.Logger)           { s.logger = l }

// Validate runs the patient rules against rec. The returned error is non-nil
// only when the province lookup itself failed; rule failures are in the
// Result.
func (s *Service) Validate(ctx context.Context, rec validation.PatientRecord) (validation.Result, error) {
	var lookupErr error
	exists := func(code string) bool {
		ok, err := s.provinces.ProvinceExists(ctx, code)
		if err != nil {
			lookupErr = err
		}
		return ok
	}

	res := s.validator.ValidatePatientRecord(rec, exists)
	if lookupErr != nil {
		return res, fmt.Errorf("look up province: %w", lookupErr)
	}

	fields := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fields = append(fields, fe.Field)
	}
	s.metrics.ObserveValidation(fields)
	if !res.Valid() {
		s.logger.Debug().Strs("fields", res.Errors.Fields()).Msg("patient record rejected")
	}
	return res, nil
}

// normalize validates p and, when valid, replaces its fields with the
// normalized values.
func (s *Service) normalize(ctx context.Context, p *Patient) error {
	res, err := s.Validate(ctx, p.Record())
	if err != nil {
		return err
	}
	if !res.Valid() {
		return res.Errors
	}
	p.Apply(res.Record)
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := s.normalize(ctx, p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := s.normalize(ctx, p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}
