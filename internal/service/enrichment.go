package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
	"github.com/octobees/lead-outreach/internal/events"
	"github.com/octobees/lead-outreach/internal/provider"
	"github.com/octobees/lead-outreach/internal/ratelimit"
	"github.com/octobees/lead-outreach/internal/repository"
)

// Messages recorded for skipped providers. Webhook consumers and the
// dashboard match on these strings.
const (
	errNoWebsite     = "No website available"
	errNotConfigured = "API not configured"
	errRateLimited   = "Rate limit exceeded"
)

const defaultContactLimit = 10

// CompanyDataProvider supplies firmographic data for a domain.
type CompanyDataProvider interface {
	Configured() bool
	FetchCompany(ctx context.Context, domain string) (*provider.CompanyProfile, error)
}

// EmailDiscoveryProvider lists contact addresses for a domain.
type EmailDiscoveryProvider interface {
	Configured() bool
	DomainSearch(ctx context.Context, domain string, limit int) (*provider.DomainSearchResult, error)
}

// EnrichmentService runs the per-business enrichment workflow: both providers
// are invoked sequentially in a fixed order, each gated by quota and
// credentials, and a failure in one never aborts the other or rolls back
// already-merged data.
type EnrichmentService struct {
	businesses repository.BusinessesRepository
	contacts   repository.ContactsRepository
	logs       repository.EnrichmentLogsRepository
	limiter    ratelimit.Limiter
	abstract   CompanyDataProvider
	hunter     EmailDiscoveryProvider
	sink       events.Sink

	contactLimit int
}

// NewEnrichmentService wires the orchestrator.
func NewEnrichmentService(
	businesses repository.BusinessesRepository,
	contacts repository.ContactsRepository,
	logs repository.EnrichmentLogsRepository,
	limiter ratelimit.Limiter,
	abstract CompanyDataProvider,
	hunter EmailDiscoveryProvider,
	sink events.Sink,
) *EnrichmentService {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &EnrichmentService{
		businesses:   businesses,
		contacts:     contacts,
		logs:         logs,
		limiter:      limiter,
		abstract:     abstract,
		hunter:       hunter,
		sink:         sink,
		contactLimit: defaultContactLimit,
	}
}

// providerStep describes one provider in the fixed invocation order. invoke
// performs the call and applies its side effects, returning the raw payload
// for the audit log.
type providerStep struct {
	name       string
	configured func() bool
	invoke     func(ctx context.Context) (any, error)
}

// EnrichBusiness runs the full workflow for one business. Per-provider
// failures are reported inside the result; the only hard error besides
// persistence trouble is repository.ErrBusinessNotFound.
func (s *EnrichmentService) EnrichBusiness(ctx context.Context, businessID uuid.UUID) (*dto.EnrichmentResult, error) {
	business, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	result := &dto.EnrichmentResult{
		BusinessID:   business.ID.String(),
		BusinessName: business.Name,
		Errors:       []dto.ServiceError{},
	}

	if business.Website == nil || strings.TrimSpace(*business.Website) == "" {
		result.Errors = append(result.Errors,
			dto.ServiceError{Service: entity.ServiceAbstract, Error: errNoWebsite},
			dto.ServiceError{Service: entity.ServiceHunter, Error: errNoWebsite},
		)
		if err := s.businesses.UpdateEnrichment(ctx, business.ID, repository.BusinessEnrichmentUpdate{Status: entity.EnrichmentFailed}); err != nil {
			return nil, fmt.Errorf("update enrichment status: %w", err)
		}
		return result, nil
	}

	domain := NormalizeDomain(*business.Website)

	var (
		update     repository.BusinessEnrichmentUpdate
		abstractOK bool
		hunterOK   bool
	)

	steps := []providerStep{
		{
			name:       entity.ServiceAbstract,
			configured: s.abstract.Configured,
			invoke: func(ctx context.Context) (any, error) {
				profile, err := s.abstract.FetchCompany(ctx, domain)
				if err != nil {
					return nil, err
				}
				mergeCompanyProfile(profile, &update)
				result.Abstract = asMap(profile)
				abstractOK = true
				return profile, nil
			},
		},
		{
			name:       entity.ServiceHunter,
			configured: s.hunter.Configured,
			invoke: func(ctx context.Context) (any, error) {
				search, err := s.hunter.DomainSearch(ctx, domain, s.contactLimit)
				if err != nil {
					return nil, err
				}
				s.ingestContacts(ctx, business.ID, search)
				result.Hunter = asMap(search)
				hunterOK = true
				return search, nil
			},
		},
	}

	for _, step := range steps {
		if !step.configured() {
			result.Errors = append(result.Errors, dto.ServiceError{Service: step.name, Error: errNotConfigured})
			continue
		}
		if !s.limiter.CanMakeCall(step.name) {
			result.Errors = append(result.Errors, dto.ServiceError{Service: step.name, Error: errRateLimited})
			continue
		}
		// Quota is spent on the attempt, not on the outcome.
		s.limiter.RecordCall(step.name)

		payload, err := step.invoke(ctx)
		if err != nil {
			result.Errors = append(result.Errors, dto.ServiceError{Service: step.name, Error: err.Error()})
			s.audit(ctx, business.ID, step.name, domain, nil, err)
			continue
		}
		s.audit(ctx, business.ID, step.name, domain, payload, nil)
	}

	status := ResolveEnrichmentStatus(len(result.Errors), abstractOK || hunterOK)
	update.Status = status
	if err := s.businesses.UpdateEnrichment(ctx, business.ID, update); err != nil {
		return nil, fmt.Errorf("update business enrichment: %w", err)
	}

	event := map[string]any{
		"businessId":        business.ID.String(),
		"name":              business.Name,
		"enrichment_status": string(status),
		"abstractSucceeded": abstractOK,
		"hunterSucceeded":   hunterOK,
		"errorCount":        len(result.Errors),
	}
	if err := s.sink.Publish(ctx, "business.enriched", event); err != nil {
		log.Printf("event sink publish failed business_id=%s: %v", business.ID, err)
	}

	return result, nil
}

// mergeCompanyProfile copies the non-empty provider fields into the pending
// update. Empty provider fields never blank stored values.
func mergeCompanyProfile(profile *provider.CompanyProfile, update *repository.BusinessEnrichmentUpdate) {
	if profile.Industry != "" {
		update.Industry = &profile.Industry
	}
	if profile.EmployeeCount > 0 {
		count := profile.EmployeeCount
		update.EmployeeCount = &count
	}
	if profile.YearFounded > 0 {
		year := profile.YearFounded
		update.YearFounded = &year
	}
	if profile.Country != "" {
		update.Country = &profile.Country
	}
	if profile.Locality != "" {
		update.City = &profile.Locality
	}
	if phone, ok := NormalizePhone(profile.Phone, regionFromCountry(profile.Country)); ok {
		update.Phone = &phone
	}
}

// regionFromCountry maps a provider country value to a phonenumbers region
// hint; only two-letter codes are usable.
func regionFromCountry(country string) string {
	if len(country) == 2 {
		return strings.ToUpper(country)
	}
	return ""
}

// ingestContacts persists discovered addresses, skipping (business, email)
// pairs that already exist. Store errors are logged and never interrupt the
// remaining addresses.
func (s *EnrichmentService) ingestContacts(ctx context.Context, businessID uuid.UUID, search *provider.DomainSearchResult) {
	for _, discovered := range search.Emails {
		email := strings.ToLower(strings.TrimSpace(discovered.Value))
		if !ValidEmail(email) {
			log.Printf("skipping malformed discovered email business_id=%s value=%q", businessID, discovered.Value)
			continue
		}

		if _, err := s.contacts.FindByBusinessAndEmail(ctx, businessID, email); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrContactNotFound) {
			log.Printf("contact lookup failed business_id=%s email=%s: %v", businessID, email, err)
			continue
		}

		contact := &entity.Contact{
			BusinessID:    businessID,
			Email:         email,
			EmailVerified: discovered.Verification != nil && discovered.Verification.Status == "valid",
			IsPrimary:     discovered.Type == "personal" || discovered.Seniority == "senior",
		}
		if discovered.FirstName != "" && discovered.LastName != "" {
			name := discovered.FirstName + " " + discovered.LastName
			contact.Name = &name
		}
		if discovered.Position != "" {
			title := discovered.Position
			contact.Title = &title
		}
		if phone, ok := NormalizePhone(discovered.PhoneNumber, ""); ok {
			contact.Phone = &phone
		}

		if err := s.contacts.Create(ctx, contact); err != nil {
			if errors.Is(err, repository.ErrContactDuplicate) {
				continue
			}
			log.Printf("contact create failed business_id=%s email=%s: %v", businessID, email, err)
		}
	}
}

// audit appends one provider-call record. Audit persistence is best-effort:
// failures are logged and swallowed.
func (s *EnrichmentService) audit(ctx context.Context, businessID uuid.UUID, service, domain string, payload any, callErr error) {
	entry := &entity.EnrichmentLog{
		BusinessID: businessID,
		Service:    service,
	}

	request, err := json.Marshal(map[string]string{"domain": domain})
	if err == nil {
		entry.RequestData = request
	}

	if callErr != nil {
		entry.Status = entity.LogStatusFailed
		msg := callErr.Error()
		entry.ErrorMessage = &msg
	} else {
		entry.Status = entity.LogStatusSuccess
		if response, err := json.Marshal(payload); err == nil {
			entry.ResponseData = response
		}
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		log.Printf("enrichment log write failed business_id=%s service=%s: %v", businessID, service, err)
	}
}

// asMap round-trips a typed provider payload into the loose map shape the
// enrichment result exposes.
func asMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
