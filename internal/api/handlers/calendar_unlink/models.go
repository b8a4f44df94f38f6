package calendar_unlink

// UnlinkResponse HTTP response model
type UnlinkResponse struct {
	Unlinked bool `json:"unlinked"` // false - календарь не был привязан
}
