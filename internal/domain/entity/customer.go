package entity

// Customer is the walk-in customer captured during the Customer stage.
// It is a value object, not a database entity — its fields are copied
// onto the Transaction row at finalize time.
type Customer struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Gender string `json:"gender,omitempty"`
	City   string `json:"city,omitempty"`
}

// IsComplete reports whether the required customer fields are filled.
// Gender and city are optional.
func (c *Customer) IsComplete() bool {
	return c != nil && c.Name != "" && c.Phone != ""
}
