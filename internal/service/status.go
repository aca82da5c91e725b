package service

import "github.com/octobees/lead-outreach/internal/entity"

// ResolveEnrichmentStatus decides the final status of an enrichment run.
// A business counts as enriched when no provider errored OR when at least one
// provider produced a usable result, so one success plus one failure still
// resolves to enriched. Downstream consumers rely on this tie-break.
func ResolveEnrichmentStatus(errorCount int, anySuccess bool) entity.EnrichmentStatus {
	if errorCount == 0 || anySuccess {
		return entity.EnrichmentEnriched
	}
	return entity.EnrichmentFailed
}
