// internal/domain/models/businessentry.go
package models

// BusinessEntry is one policy sale recorded with the upstream API.
type BusinessEntry struct {
	ID               string   `json:"_id"`
	PolicyNumber     *string  `json:"policyNumber,omitempty"`
	CustomerName     *string  `json:"customerName,omitempty"`
	InsuranceCompany *string  `json:"insuranceCompany,omitempty"`
	VehicleNumber    *string  `json:"vehicleNumber,omitempty"`
	Premium          *float64 `json:"premium,omitempty"`
	Status           *string  `json:"status,omitempty"`
	CreatedAt        *string  `json:"createdAt,omitempty"`
}

// Broker is an entry of the broker-name registry.
type Broker struct {
	ID        string  `json:"_id"`
	Name      *string `json:"name,omitempty"`
	CreatedAt *string `json:"createdAt,omitempty"`
}
