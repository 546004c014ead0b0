package ports

import (
	"context"

	"github.com/aretw0/autoplan/pkg/domain"
)

// TemplateSource fetches the template index.
type TemplateSource interface {
	Fetch(ctx context.Context) (*domain.TemplateIndex, error)
}
