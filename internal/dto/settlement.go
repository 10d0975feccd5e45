package dto

// SendToPartnerRequest selects which order documents go to the forex partner.
// An empty list sends every document of the order.
type SendToPartnerRequest struct {
	DocumentIDs []string `json:"documentIDs" binding:"omitempty,dive,uuid"`
}
