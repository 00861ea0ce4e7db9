package entity

// RegistrationResult is scraped from the last row of the confirmation table.
type RegistrationResult struct {
	Serial        string `json:"serial"`
	MaskedName    string `json:"maskedName"`
	GeneratedCode string `json:"generatedCode"`
	Status        string `json:"status"`
}

// PaymentResult is scraped from the payment confirmation text. OrderNumber may
// be empty when no pattern matched; OrderNumberMissing flags that case so the
// caller can distinguish it from a parsed empty value.
type PaymentResult struct {
	OrderNumber        string `json:"orderNumber"`
	Entity             string `json:"entity"`
	ServiceType        string `json:"serviceType"`
	Status             string `json:"status"`
	RawText            string `json:"rawText"`
	OrderNumberMissing bool   `json:"orderNumberMissing,omitempty"`
}
