package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
	"github.com/octobees/lead-outreach/internal/provider"
	"github.com/octobees/lead-outreach/internal/repository"
)

type mockBusinessesRepository struct {
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	findPending func(ctx context.Context, limit int) ([]entity.Business, error)
	update      func(ctx context.Context, id uuid.UUID, update repository.BusinessEnrichmentUpdate) error
}

func (m *mockBusinessesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockBusinessesRepository) FindPendingEnrichment(ctx context.Context, limit int) ([]entity.Business, error) {
	if m.findPending != nil {
		return m.findPending(ctx, limit)
	}
	return nil, errors.New("findPending not implemented")
}

func (m *mockBusinessesRepository) UpdateEnrichment(ctx context.Context, id uuid.UUID, update repository.BusinessEnrichmentUpdate) error {
	if m.update != nil {
		return m.update(ctx, id, update)
	}
	return errors.New("update not implemented")
}

type mockContactsRepository struct {
	find   func(ctx context.Context, businessID uuid.UUID, email string) (*entity.Contact, error)
	create func(ctx context.Context, contact *entity.Contact) error
}

func (m *mockContactsRepository) FindByBusinessAndEmail(ctx context.Context, businessID uuid.UUID, email string) (*entity.Contact, error) {
	if m.find != nil {
		return m.find(ctx, businessID, email)
	}
	return nil, repository.ErrContactNotFound
}

func (m *mockContactsRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if m.create != nil {
		return m.create(ctx, contact)
	}
	return nil
}

type mockLogsRepository struct {
	create func(ctx context.Context, entry *entity.EnrichmentLog) error
}

func (m *mockLogsRepository) Create(ctx context.Context, entry *entity.EnrichmentLog) error {
	if m.create != nil {
		return m.create(ctx, entry)
	}
	return nil
}

type mockMessagesRepository struct {
	create        func(ctx context.Context, message *entity.OutreachMessage) error
	findByID      func(ctx context.Context, id uuid.UUID) (*entity.OutreachMessage, error)
	markSent      func(ctx context.Context, id uuid.UUID) error
	updateStatus  func(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error
	countByStatus func(ctx context.Context) (map[string]int, error)
}

func (m *mockMessagesRepository) Create(ctx context.Context, message *entity.OutreachMessage) error {
	if m.create != nil {
		return m.create(ctx, message)
	}
	return errors.New("create not implemented")
}

func (m *mockMessagesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.OutreachMessage, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockMessagesRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if m.markSent != nil {
		return m.markSent(ctx, id)
	}
	return errors.New("markSent not implemented")
}

func (m *mockMessagesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return errors.New("updateStatus not implemented")
}

func (m *mockMessagesRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	if m.countByStatus != nil {
		return m.countByStatus(ctx)
	}
	return nil, errors.New("countByStatus not implemented")
}

type mockCompanyProvider struct {
	configured bool
	fetch      func(ctx context.Context, domain string) (*provider.CompanyProfile, error)
}

func (m *mockCompanyProvider) Configured() bool { return m.configured }

func (m *mockCompanyProvider) FetchCompany(ctx context.Context, domain string) (*provider.CompanyProfile, error) {
	if m.fetch != nil {
		return m.fetch(ctx, domain)
	}
	return nil, errors.New("fetch not implemented")
}

type mockEmailDiscoveryProvider struct {
	configured bool
	search     func(ctx context.Context, domain string, limit int) (*provider.DomainSearchResult, error)
}

func (m *mockEmailDiscoveryProvider) Configured() bool { return m.configured }

func (m *mockEmailDiscoveryProvider) DomainSearch(ctx context.Context, domain string, limit int) (*provider.DomainSearchResult, error) {
	if m.search != nil {
		return m.search(ctx, domain, limit)
	}
	return nil, errors.New("search not implemented")
}

type mockDeliveryProvider struct {
	configured bool
	send       func(ctx context.Context, msg provider.OutboundEmail) (string, error)
}

func (m *mockDeliveryProvider) Configured() bool { return m.configured }
func (m *mockDeliveryProvider) Name() string     { return "sendgrid" }

func (m *mockDeliveryProvider) Send(ctx context.Context, msg provider.OutboundEmail) (string, error) {
	if m.send != nil {
		return m.send(ctx, msg)
	}
	return "", errors.New("send not implemented")
}

// recordingLimiter counts gate checks and recorded calls per service.
type recordingLimiter struct {
	blocked  map[string]bool
	checks   []string
	recorded []string
}

func (l *recordingLimiter) CanMakeCall(service string) bool {
	l.checks = append(l.checks, service)
	return !l.blocked[service]
}

func (l *recordingLimiter) RecordCall(service string) {
	l.recorded = append(l.recorded, service)
}

func (l *recordingLimiter) RemainingCalls(service string) int { return 1 }

// recordingSink captures published domain events.
type recordingSink struct {
	events   []string
	payloads []any
	err      error
}

func (s *recordingSink) Publish(ctx context.Context, event string, payload any) error {
	s.events = append(s.events, event)
	s.payloads = append(s.payloads, payload)
	return s.err
}

// mockEnricher drives BatchService tests.
type mockEnricher struct {
	enrich func(ctx context.Context, businessID uuid.UUID) (*dto.EnrichmentResult, error)
}

func (m *mockEnricher) EnrichBusiness(ctx context.Context, businessID uuid.UUID) (*dto.EnrichmentResult, error) {
	if m.enrich != nil {
		return m.enrich(ctx, businessID)
	}
	return nil, errors.New("enrich not implemented")
}
