package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/lead-outreach/internal/dto"
	"github.com/octobees/lead-outreach/internal/entity"
	"github.com/octobees/lead-outreach/internal/repository"
)

const (
	defaultBatchCount = 10
	maxBatchCount     = 50
)

// Enricher is the single-business workflow the batch loop drives.
type Enricher interface {
	EnrichBusiness(ctx context.Context, businessID uuid.UUID) (*dto.EnrichmentResult, error)
}

// BatchService enriches pending businesses strictly sequentially with a fixed
// delay between items. The pacing keeps provider free-tier quotas intact; a
// started batch always runs to completion item by item.
type BatchService struct {
	businesses repository.BusinessesRepository
	enricher   Enricher
	delay      time.Duration
	sleep      func(time.Duration)
}

// NewBatchService wires a batch coordinator with the given inter-item delay.
func NewBatchService(businesses repository.BusinessesRepository, enricher Enricher, delay time.Duration) *BatchService {
	return &BatchService{
		businesses: businesses,
		enricher:   enricher,
		delay:      delay,
		sleep:      time.Sleep,
	}
}

// ProcessPending enriches up to count pending businesses, oldest first. One
// item failing hard is recorded as a failed result and never halts the rest.
func (s *BatchService) ProcessPending(ctx context.Context, count int) (*dto.BatchProcessResponse, error) {
	if count <= 0 {
		count = defaultBatchCount
	}
	if count > maxBatchCount {
		count = maxBatchCount
	}

	pending, err := s.businesses.FindPendingEnrichment(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("select pending businesses: %w", err)
	}

	response := &dto.BatchProcessResponse{Results: []dto.BatchItemResult{}}
	for i, business := range pending {
		if i > 0 && s.delay > 0 {
			s.sleep(s.delay)
		}

		item := dto.BatchItemResult{
			BusinessID:   business.ID.String(),
			BusinessName: business.Name,
		}

		result, err := s.enricher.EnrichBusiness(ctx, business.ID)
		if err != nil {
			log.Printf("batch enrichment failed business_id=%s: %v", business.ID, err)
			item.Status = string(entity.EnrichmentFailed)
			item.Error = err.Error()
			response.Failed++
		} else {
			status := ResolveEnrichmentStatus(len(result.Errors), result.Abstract != nil || result.Hunter != nil)
			item.Status = string(status)
			item.ErrorCount = len(result.Errors)
			if status == entity.EnrichmentEnriched {
				response.Enriched++
			} else {
				response.Failed++
			}
		}

		response.Results = append(response.Results, item)
		response.Total++
	}

	response.Message = fmt.Sprintf("processed %d businesses", response.Total)
	return response, nil
}
