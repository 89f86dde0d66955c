// Package tiers holds the fixed quota tier table. The table only feeds the
// admin selection UI; the limit actually enforced is whatever the stored
// user_limits row says, which admins may set to any value.
package tiers

// Plan pairs a tier name with its suggested post limit.
type Plan struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

const (
	FreeTierName  = "Free"
	FreeTierLimit = 1
)

// Plans is the fixed tier table, cheapest first.
var Plans = []Plan{
	{Name: FreeTierName, Limit: FreeTierLimit},
	{Name: "Iron", Limit: 5},
	{Name: "Steel", Limit: 10},
	{Name: "Copper", Limit: 15},
	{Name: "Silver", Limit: 20},
	{Name: "Gold", Limit: 25},
}

// DefaultLimit returns the suggested limit for a tier name.
func DefaultLimit(name string) (int, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p.Limit, true
		}
	}
	return 0, false
}
