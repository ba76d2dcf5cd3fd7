package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"clubdvigi-api/internal/metrics"
	"clubdvigi-api/internal/models"
	"clubdvigi-api/internal/shopify"
)

// Registration outcomes reported to metrics
const (
	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultFailed   = "failed"
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

const valuePreviewLength = 120

// RegistrationConfig holds the optional collaborators of the registration service
type RegistrationConfig struct {
	// SerializeByEmail holds a per-email lock from the customer search until
	// the warranty list is written back
	SerializeByEmail bool
	Logger           *logrus.Logger
	Metrics          metrics.RegistrationMetrics
	// Now stamps warranty entries; defaults to time.Now
	Now func() time.Time
}

// registrationService implements the RegistrationService interface
type registrationService struct {
	store     CustomerStore
	validator *validator.Validate
	logger    *logrus.Logger
	metrics   metrics.RegistrationMetrics
	locks     *emailLock
	now       func() time.Time
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(store CustomerStore, cfg RegistrationConfig) RegistrationService {
	s := &registrationService{
		store:     store,
		validator: validator.New(),
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       cfg.Now,
	}

	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if cfg.SerializeByEmail {
		s.locks = newEmailLock()
	}

	return s
}

// Register creates or updates the customer and records the product
func (s *registrationService) Register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResult, error) {
	if req == nil {
		req = &models.RegistrationRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, ErrEmailRequired
	}
	if !s.store.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if s.locks != nil {
		unlock := s.locks.Lock(req.Email)
		defer unlock()
	}

	result, err := s.register(ctx, req)
	if err != nil {
		s.metrics.IncRegistration(ResultFailed)
		return nil, err
	}

	if result.Existed {
		s.metrics.IncRegistration(ResultUpdated)
	} else {
		s.metrics.IncRegistration(ResultCreated)
	}

	return result, nil
}

func (s *registrationService) register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResult, error) {
	found, err := s.store.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to search customer: %w", err)
	}

	var (
		existed      = found != nil
		customerID   string
		existingTags []string
	)
	if found != nil {
		customerID = found.ID
		existingTags = found.Tags
	}

	input := shopify.CustomerInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.WhatsApp,
		Tags:      models.MergeTags(existingTags, req.Tags, req.NotifyChannel),
	}

	// A search hit without an id is created like a miss
	if customerID == "" {
		customerID, err = s.store.CreateCustomer(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
	} else {
		if err := s.store.UpdateCustomer(ctx, customerID, input); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	list, err := s.loadWarrantyList(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entry := models.NewWarrantyEntry(req, s.now())
	added, err := list.Add(entry)
	if err != nil {
		return nil, err
	}
	s.metrics.IncWarrantyEntry(string(added))

	value, err := list.Value()
	if err != nil {
		return nil, fmt.Errorf("failed to encode warranty list: %w", err)
	}
	if err := s.store.SetMetafield(ctx, customerID, value); err != nil {
		return nil, fmt.Errorf("failed to save warranty list: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id":    customerID,
		"existed":        existed,
		"warranty_entry": added,
		"warranty_items": list.Len(),
	}).Info("Club Dvigi registration saved")

	return models.NewRegistrationResult(existed), nil
}

// loadWarrantyList reads the stored list. A value that does not parse as a
// JSON array is replaced by an empty list.
func (s *registrationService) loadWarrantyList(ctx context.Context, customerID string) (*models.WarrantyList, error) {
	mf, err := s.store.GetMetafield(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read warranty list: %w", err)
	}
	if mf == nil {
		return models.NewWarrantyList(), nil
	}

	list, err := models.ParseWarrantyList(mf.Value)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"customer_id":   customerID,
			"metafield_id":  mf.ID,
			"value_preview": preview(mf.Value),
			"error":         err.Error(),
		}).Warn("Discarding unreadable warranty list")
	}

	return list, nil
}

// Lookup returns the contact fields of the first customer matching the email
func (s *registrationService) Lookup(ctx context.Context, req *models.LookupRequest) (*models.ContactDetails, error) {
	if req == nil {
		req = &models.LookupRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, ErrEmailRequired
	}
	if !s.store.IsConfigured() {
		return nil, ErrNotConfigured
	}

	customer, err := s.store.LookupCustomerByEmail(ctx, req.Email)
	if err != nil {
		s.metrics.IncLookup(ResultFailed)
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		s.metrics.IncLookup(ResultNotFound)
		return nil, ErrCustomerNotFound
	}

	s.metrics.IncLookup(ResultFound)
	return &models.ContactDetails{
		FirstName: valueOrEmpty(customer.FirstName),
		LastName:  valueOrEmpty(customer.LastName),
		Phone:     valueOrEmpty(customer.Phone),
	}, nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func preview(value string) string {
	if len(value) <= valuePreviewLength {
		return value
	}
	return value[:valuePreviewLength] + "..."
}
