package models

// PlatformSettings is a singleton record holding storefront
// configuration. Exactly one instance exists per deployment.
type PlatformSettings struct {
	PaymentQrCode string   `json:"paymentQrCode,omitempty"` // data URL of the payment QR image
	UpiID         string   `json:"upiId"`
	ContactNumber string   `json:"contactNumber"`
	FlashNews     []string `json:"flashNews"`
	Categories    []string `json:"categories"`
}

// DefaultSettings returns the settings created on first access.
func DefaultSettings() *PlatformSettings {
	return &PlatformSettings{
		UpiID:         "shamanth@okaxis",
		ContactNumber: "+91 9902122531",
		FlashNews:     []string{},
		Categories:    []string{"React", "Java", "Python", "AWS", "Data Science"},
	}
}
