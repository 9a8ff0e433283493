package evolution

// InstanceRequest describes the WhatsApp instance to create.
type InstanceRequest struct {
	InstanceName string `json:"instanceName"`
	Number       string `json:"number"`
	QRCode       bool   `json:"qrcode"`
}

// WebhookRequest configures event delivery for an instance.
type WebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// AutomationResult is the normalized success/failure shape returned by
// the automation endpoints.
type AutomationResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	QRCode        string `json:"qrcode,omitempty"`
	ConnectionURL string `json:"connectionUrl,omitempty"`
}

// ErrorResponse is the error payload shape.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
