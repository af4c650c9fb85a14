package request

type BatchComboRequest struct {
	AINs []string `json:"ains"`
}
