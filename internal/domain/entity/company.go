package entity

// CompanyProfile is the letterhead block printed on every document. It comes
// from configuration, not the database.
type CompanyProfile struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	StateCode    string
	Pincode      string
	Email        string
	Phone        string
	GstNumber    string
}
