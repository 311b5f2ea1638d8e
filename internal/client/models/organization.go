package models

// Organization is the subset of the base organization record used to prefill
// the sender block of a new draft.
type Organization struct {
	Identifier      string `json:"identifier"`
	Name            string `json:"name"`
	AddressCountry  string `json:"addressCountry,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	BuildingNumber  string `json:"buildingNumber,omitempty"`
}

// SenderInfo maps the organization onto a request sender block.
func (o Organization) SenderInfo() SenderInfo {
	return SenderInfo{
		OrganizationName: o.Name,
		AddressCountry:   o.AddressCountry,
		PostalCode:       o.PostalCode,
		AddressLocality:  o.AddressLocality,
		StreetAddress:    o.StreetAddress,
		BuildingNumber:   o.BuildingNumber,
	}
}
