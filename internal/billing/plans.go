package billing

import (
	"errors"
	"sort"
)

var ErrPlanNotFound = errors.New("plan not found")

// PlanTerms are the commercial terms of one wedding package. Prices are in
// euros (major units); Stripe line items multiply by 100 at checkout time.
type PlanTerms struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	GuestLimit      int    `json:"guest_limit"`
	IncludesAI      bool   `json:"includes_ai"`
	IncludesEmails  bool   `json:"includes_emails"`
	IncludesSupport bool   `json:"includes_support"`
	IncludesPlanner bool   `json:"includes_planner"`
}

// Catalog is the fixed package catalog, built once at startup and injected
// into the checkout service. It exposes no mutation.
type Catalog struct {
	plans map[string]PlanTerms
}

func DefaultCatalog() Catalog {
	return NewCatalog(
		PlanTerms{
			ID:         "essentiel",
			Name:       "Essentiel",
			Price:      990,
			GuestLimit: 100,
			IncludesAI: true,
		},
		PlanTerms{
			ID:              "premium",
			Name:            "Premium",
			Price:           2990,
			GuestLimit:      200,
			IncludesAI:      true,
			IncludesEmails:  true,
			IncludesSupport: true,
		},
		PlanTerms{
			ID:              "luxe",
			Name:            "Luxe",
			Price:           7990,
			GuestLimit:      999999,
			IncludesAI:      true,
			IncludesEmails:  true,
			IncludesSupport: true,
			IncludesPlanner: true,
		},
	)
}

func NewCatalog(plans ...PlanTerms) Catalog {
	m := make(map[string]PlanTerms, len(plans))
	for _, p := range plans {
		m[p.ID] = p
	}
	return Catalog{plans: m}
}

// Resolve returns the terms for a plan id, or ErrPlanNotFound. Unknown ids
// never fall back to a default plan.
func (c Catalog) Resolve(planID string) (PlanTerms, error) {
	terms, ok := c.plans[planID]
	if !ok {
		return PlanTerms{}, ErrPlanNotFound
	}
	return terms, nil
}

// All returns every plan, cheapest first, for the pricing page.
func (c Catalog) All() []PlanTerms {
	out := make([]PlanTerms, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
