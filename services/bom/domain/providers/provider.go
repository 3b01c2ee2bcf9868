// Package providers defines the capability interfaces for external part
// sources. The domain layer owns these interfaces; infrastructure implements
// one adapter per distributor API.
package providers

import (
	"context"

	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// PartProvider is the uniform search contract over one distributor catalog.
// Implementations own their credential/token lifecycle and must return their
// result list sorted ascending by price. Both search methods are fallible;
// failures are isolated by the orchestrator, never silently truncated.
type PartProvider interface {
	// Name is the stable provider identifier ("mouser", "digikey", "octopart").
	Name() string

	// Configured reports whether the adapter can serve searches: real
	// credentials are present, or the adapter's mock-on-missing-credentials
	// policy is enabled.
	Configured() bool

	// Search finds offers by a general query string.
	Search(ctx context.Context, query string) ([]models.Offer, error)

	// SearchByMPN finds offers by manufacturer part number, optionally
	// narrowed by manufacturer name.
	SearchByMPN(ctx context.Context, mpn, manufacturer string) ([]models.Offer, error)
}

// PartIdentifier extracts a probable manufacturer part number from free text.
// It is an optional enrichment collaborator; a realization result is valid
// without it, and identification failures are never surfaced to callers.
type PartIdentifier interface {
	IdentifyMPN(ctx context.Context, description string) (string, error)
}
