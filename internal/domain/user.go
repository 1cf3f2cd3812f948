package domain

// UserProfile is one synthetic user. It is created once per journey and
// never mutated afterwards.
type UserProfile struct {
	Key         string
	Name        string
	Country     string
	State       string
	PetType     string
	PlanType    string
	PaymentType string
}

// Variant is the experiment arm a user effectively received, derived from
// the hero banner flag content.
type Variant string

const (
	VariantControl Variant = "Control"
	VariantOne     Variant = "Variant 1"
	VariantNextGen Variant = "Next Generation"
)
