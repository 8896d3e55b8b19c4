package models

// ClaimRequest is the intake form submitted to POST /api/v1/claims.
type ClaimRequest struct {
	VIN   string `json:"vin,omitempty" form:"vin"`
	Make  string `json:"make,omitempty" form:"make"`
	Model string `json:"model,omitempty" form:"model"`

	VehicleRegistrationNumber string `json:"vehicleRegistrationNumber" form:"vehicleRegistrationNumber"`
	VehicleMakeModel          string `json:"vehicleMakeModel" form:"vehicleMakeModel"`
	YearOfManufacture         int    `json:"yearOfManufacture,omitempty" form:"yearOfManufacture"`
	FuelType                  string `json:"fuelType" form:"fuelType"`
	OdometerReading           int    `json:"odometerReading,omitempty" form:"odometerReading"`
	ChassisNumber             string `json:"chassisNumber" form:"chassisNumber"`
	EngineNumber              string `json:"engineNumber" form:"engineNumber"`
	DateOfIncident            string `json:"dateOfIncident,omitempty" form:"dateOfIncident"`
	Location                  string `json:"location" form:"location"`
	ClaimReason               string `json:"claimReason" form:"claimReason"`
	IncidentDescription       string `json:"incidentDescription" form:"incidentDescription"`

	FirstName            string `json:"firstName" form:"firstName"`
	LastName             string `json:"lastName" form:"lastName"`
	MobileNumber         string `json:"mobileNumber" form:"mobileNumber"`
	Email                string `json:"email" form:"email"`
	AadharNumber         string `json:"aadharNumber" form:"aadharNumber"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber" form:"drivingLicenseNumber"`
	Address              string `json:"address" form:"address"`

	InsuranceCompany         string  `json:"insuranceCompany" form:"insuranceCompany"`
	PolicyNumber             string  `json:"policyNumber" form:"policyNumber"`
	PolicyExpiryDate         string  `json:"policyExpiryDate,omitempty" form:"policyExpiryDate"`
	ClaimNumber              string  `json:"claimNumber" form:"claimNumber"`
	IsFirFiled               bool    `json:"isFirFiled" form:"isFirFiled"`
	FirNumber                string  `json:"firNumber" form:"firNumber"`
	PreferredGarage          string  `json:"preferredGarage" form:"preferredGarage"`
	NeedsPickup              bool    `json:"needsPickup" form:"needsPickup"`
	Urgency                  string  `json:"urgency" form:"urgency"`
	BudgetEstimate           float64 `json:"budgetEstimate,omitempty" form:"budgetEstimate"`
	InsuredDeclaredValue     float64 `json:"insuredDeclaredValue,omitempty" form:"insuredDeclaredValue"`
	HasZeroDepreciationCover bool    `json:"hasZeroDepreciationCover" form:"hasZeroDepreciationCover"`
}

// Claim is the persisted claim returned when intake succeeds.
type Claim struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type ClaimSummary struct {
	ID                        int64   `json:"id"`
	VehicleMakeModel          string  `json:"vehicleMakeModel"`
	VehicleRegistrationNumber string  `json:"vehicleRegistrationNumber"`
	CreatedAt                 string  `json:"createdAt"`
	Status                    string  `json:"status"`
	EstimatedTotal            float64 `json:"estimatedTotal"`
	UserName                  string  `json:"userName"`
	UserEmail                 string  `json:"userEmail"`
}

// ClaimDetail mirrors the backend's detailed claim view including the stored analysis.
type ClaimDetail struct {
	ID int64 `json:"id"`

	VehicleRegistrationNumber string `json:"vehicleRegistrationNumber"`
	VehicleMakeModel          string `json:"vehicleMakeModel"`
	YearOfManufacture         int    `json:"yearOfManufacture"`
	FuelType                  string `json:"fuelType"`
	OdometerReading           int    `json:"odometerReading"`
	ChassisNumber             string `json:"chassisNumber"`
	EngineNumber              string `json:"engineNumber"`
	DateOfIncident            string `json:"dateOfIncident"`
	IncidentDescription       string `json:"incidentDescription"`

	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	MobileNumber         string `json:"mobileNumber"`
	Email                string `json:"email"`
	AadharNumber         string `json:"aadharNumber"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber"`
	Address              string `json:"address"`

	InsuranceCompany string  `json:"insuranceCompany"`
	PolicyNumber     string  `json:"policyNumber"`
	PolicyExpiryDate string  `json:"policyExpiryDate"`
	ClaimNumber      string  `json:"claimNumber"`
	IsFirFiled       bool    `json:"isFirFiled"`
	FirNumber        string  `json:"firNumber"`
	PreferredGarage  string  `json:"preferredGarage"`
	NeedsPickup      bool    `json:"needsPickup"`
	Urgency          string  `json:"urgency"`
	BudgetEstimate   float64 `json:"budgetEstimate"`

	CreatedAt        string     `json:"createdAt"`
	Status           string     `json:"status"`
	EstimatedTotal   float64    `json:"estimatedTotal"`
	LineItems        []LineItem `json:"lineItems"`
	AnalysisResponse *Analysis  `json:"analysisResponse"`
}

type LineItem struct {
	Part       string  `json:"part"`
	DamageType string  `json:"damageType"`
	Action     string  `json:"action"`
	Amount     float64 `json:"amount"`
}

type DamageLocation struct {
	Location   string  `json:"location"`
	Confidence float64 `json:"confidence"`
}

type DamageSeverity struct {
	SeverityLabel      string  `json:"severityLabel"`
	SeverityConfidence float64 `json:"severityConfidence"`
}

// Analysis is the damage detection output. PlottedImage is a base64 JPEG.
type Analysis struct {
	IsDamaged        bool             `json:"isDamaged"`
	DamageConfidence float64          `json:"damageConfidence"`
	DamageLocations  []DamageLocation `json:"damageLocations"`
	DamageSeverity   DamageSeverity   `json:"damageSeverity"`
	PlottedImage     string           `json:"plottedImage"`
}

type Estimate struct {
	LineItems       []LineItem `json:"lineItems"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	OriginalTotal   float64    `json:"originalTotal"`
	DeductionAmount float64    `json:"deductionAmount"`
	DeductionReason string     `json:"deductionReason"`
}

// FinalEstimate is returned by POST /api/v1/claims/{id}/estimate.
type FinalEstimate struct {
	Analysis Analysis `json:"analysis"`
	Estimate Estimate `json:"estimate"`
}

// HasDamage reports whether the estimate found anything to repair.
func (e Estimate) HasDamage() bool {
	return len(e.LineItems) > 0 || e.Total > 0
}
