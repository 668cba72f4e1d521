package insurance

import (
	"context"

	"travel-portal/logger"
	insuranceTypes "travel-portal/types/insurance"
)

// PlanSource lists the plans offered by the insurance service.
type PlanSource interface {
	ListPlans(ctx context.Context, token string) ([]insuranceTypes.Plan, error)
}

// Catalog serves insurance plans, keeping the funnel usable when the
// insurance service is down.
type Catalog struct {
	source PlanSource
}

func NewCatalog(source PlanSource) *Catalog {
	return &Catalog{source: source}
}

// Plans returns the service's plans, or the fallback plans and true when
// the service fails or offers none.
func (c *Catalog) Plans(ctx context.Context, token string) ([]insuranceTypes.Plan, bool) {
	plans, err := c.source.ListPlans(ctx, token)
	if err != nil {
		logger.Warning("Insurance plans unavailable, serving fallback plans: " + err.Error())
		return insuranceTypes.FallbackPlans(), true
	}
	if len(plans) == 0 {
		logger.Warning("Insurance service returned no plans, serving fallback plans")
		return insuranceTypes.FallbackPlans(), true
	}
	return plans, false
}

// Find resolves a plan by id or name from the current catalog.
func (c *Catalog) Find(ctx context.Context, token, planID string) (insuranceTypes.Plan, bool) {
	plans, _ := c.Plans(ctx, token)
	return insuranceTypes.FindPlan(plans, planID)
}
