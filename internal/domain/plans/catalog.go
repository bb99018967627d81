package plans

// Plan is display metadata for one billing interval. Interval doubles as
// the plan identifier everywhere a plan type is needed.
type Plan struct {
	Name        string   `json:"name"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	IsPopular   bool     `json:"isPopular"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

const (
	IntervalWeek  = "week"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Config carries the Stripe price ids for the three fixed intervals,
// supplied from the environment at startup.
type Config struct {
	WeekPriceID  string
	MonthPriceID string
	YearPriceID  string
}

// Catalog is the fixed plan table. Built once in main and immutable after;
// no dynamic plan creation.
type Catalog struct {
	priceIDs map[string]string
	plans    []Plan
}

func NewCatalog(cfg Config) *Catalog {
	return &Catalog{
		priceIDs: map[string]string{
			IntervalWeek:  cfg.WeekPriceID,
			IntervalMonth: cfg.MonthPriceID,
			IntervalYear:  cfg.YearPriceID,
		},
		plans: []Plan{
			{
				Name:        "Weekly Plan",
				Amount:      9.99,
				Currency:    "USD",
				Interval:    IntervalWeek,
				IsPopular:   false,
				Description: "Get started with our weekly plan. Perfect for trying out our service.",
				Features:    []string{"Unlimited AI meal plans", "AI Nutrition Insights", "Cancel anytime"},
			},
			{
				Name:        "Monthly Plan",
				Amount:      39.99,
				Currency:    "USD",
				Interval:    IntervalMonth,
				IsPopular:   true,
				Description: "Perfect for ongoing, month-to-month access to our service.",
				Features:    []string{"Unlimited AI meal plans", "Priority AI support", "Cancel anytime"},
			},
			{
				Name:        "Yearly Plan",
				Amount:      299.99,
				Currency:    "USD",
				Interval:    IntervalYear,
				IsPopular:   false,
				Description: "Best value for those committed to improving their nutrition long-term.",
				Features:    []string{"Unlimited AI meal plans", "All premium features", "Cancel anytime"},
			},
		},
	}
}

// ResolvePriceID maps a plan type to its Stripe price id. Unknown plan
// types (anything outside week/month/year) resolve absent; so does an
// interval whose price id was never configured.
func (c *Catalog) ResolvePriceID(planType string) (string, bool) {
	id, ok := c.priceIDs[planType]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// List returns the display table in a stable order.
func (c *Catalog) List() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}
