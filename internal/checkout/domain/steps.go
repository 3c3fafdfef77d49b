package domain

// Step describes one section of the checkout wizard: a stable key, a label
// for display, and the form fields that must validate before the wizard may
// advance past it. The list is static configuration, never mutated at runtime.
type Step struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

// Steps is the wizard layout: Personal -> Shipping -> Payment -> Review.
// The review step carries no fields; its status derives from the prior steps.
var Steps = []Step{
	{
		Key:    "personal",
		Label:  "Personal Information",
		Fields: []string{FieldFullName, FieldEmail, FieldPhone},
	},
	{
		Key:    "shipping",
		Label:  "Shipping Address",
		Fields: []string{FieldAddress, FieldCity, FieldState, FieldZipCode, FieldCountry},
	},
	{
		Key:    "payment",
		Label:  "Payment Details",
		Fields: []string{FieldCardNumber, FieldCardName, FieldExpiryDate, FieldCVV},
	},
	{
		Key:    "review",
		Label:  "Review Order",
		Fields: nil,
	},
}

// StepIndexOf returns the index of the step owning the given field, or -1
// when no step claims it (review has no fields).
func StepIndexOf(steps []Step, field string) int {
	for i, s := range steps {
		for _, f := range s.Fields {
			if f == field {
				return i
			}
		}
	}
	return -1
}
