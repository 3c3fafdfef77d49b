package domain

// Field identifiers used by the step configuration, the validators and the
// HTTP surface. They match the JSON names of FormValues.
const (
	FieldFullName   = "fullName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldState      = "state"
	FieldZipCode    = "zipCode"
	FieldCountry    = "country"
	FieldCardNumber = "cardNumber"
	FieldCardName   = "cardName"
	FieldExpiryDate = "expiryDate"
	FieldCVV        = "cvv"
)

// FormValues holds every field of the checkout form. All fields are strings
// with no default beyond empty; mutation goes through form.State.
type FormValues struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// Field returns the value of the named field. The second return is false
// when the name is not a known form field.
func (v *FormValues) Field(name string) (string, bool) {
	switch name {
	case FieldFullName:
		return v.FullName, true
	case FieldEmail:
		return v.Email, true
	case FieldPhone:
		return v.Phone, true
	case FieldAddress:
		return v.Address, true
	case FieldCity:
		return v.City, true
	case FieldState:
		return v.State, true
	case FieldZipCode:
		return v.ZipCode, true
	case FieldCountry:
		return v.Country, true
	case FieldCardNumber:
		return v.CardNumber, true
	case FieldCardName:
		return v.CardName, true
	case FieldExpiryDate:
		return v.ExpiryDate, true
	case FieldCVV:
		return v.CVV, true
	}
	return "", false
}

// SetField assigns the named field and reports whether the name was known.
func (v *FormValues) SetField(name, value string) bool {
	switch name {
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldAddress:
		v.Address = value
	case FieldCity:
		v.City = value
	case FieldState:
		v.State = value
	case FieldZipCode:
		v.ZipCode = value
	case FieldCountry:
		v.Country = value
	case FieldCardNumber:
		v.CardNumber = value
	case FieldCardName:
		v.CardName = value
	case FieldExpiryDate:
		v.ExpiryDate = value
	case FieldCVV:
		v.CVV = value
	default:
		return false
	}
	return true
}
