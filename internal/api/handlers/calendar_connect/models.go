package calendar_connect

// ConnectResponse URL согласия Google
type ConnectResponse struct {
	URL string `json:"url"`
}
