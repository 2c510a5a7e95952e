package reward

// Tier is one rung of the static reward ladder
type Tier struct {
	Number      int    `json:"tier"`
	Threshold   int    `json:"threshold"`
	Brand       string `json:"brand"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// catalog is ordered ascending by threshold; tier numbers are ordinal
// positions in this list, not derived from thresholds.
var catalog = []Tier{
	{Number: 1, Threshold: 3, Brand: "Swiggy", Code: "SWIGGY-50-OFF", Description: "Flat 50 off on your next food order."},
	{Number: 2, Threshold: 5, Brand: "Zomato", Code: "ZOMATO-75-OFF", Description: "Save up to 75 on food delivery."},
	{Number: 3, Threshold: 10, Brand: "Blinkit", Code: "BLINKIT-10PCT", Description: "10% off on your next grocery order."},
	{Number: 4, Threshold: 15, Brand: "Ola", Code: "OLA-RIDE-100", Description: "Get up to 100 off on cab rides."},
	{Number: 5, Threshold: 20, Brand: "Uber", Code: "UBER-GREEN-75", Description: "Ride savings for helping keep the city clean."},
	{Number: 6, Threshold: 30, Brand: "KFC", Code: "KFC-MEAL-75", Description: "Discount on your next KFC meal."},
	{Number: 7, Threshold: 40, Brand: "Domino's", Code: "DOMINOS-PIZZA-100", Description: "Flat 100 off on pizza orders."},
}

// Catalog returns the full ordered tier list
func Catalog() []Tier {
	return catalog
}

// TiersEarned returns the catalog tiers whose threshold is met by
// completedCount and which are not yet in the awarded set, in catalog order.
func TiersEarned(completedCount int, awarded map[int]bool) []Tier {
	var earned []Tier
	for _, tier := range catalog {
		if completedCount >= tier.Threshold && !awarded[tier.Number] {
			earned = append(earned, tier)
		}
	}
	return earned
}

// NextTier returns the first catalog tier not yet awarded, or nil when the
// ladder is exhausted. The scan is ordinal over the catalog: it does not
// compare thresholds against the completed count.
func NextTier(awarded map[int]bool) *Tier {
	for _, tier := range catalog {
		if !awarded[tier.Number] {
			t := tier
			return &t
		}
	}
	return nil
}
