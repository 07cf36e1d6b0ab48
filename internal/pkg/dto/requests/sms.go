package requests

type OtpSmsMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}
