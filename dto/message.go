package dto

type CreateConversationRequest struct {
	BookingID string `json:"bookingId" binding:"required,uuid"`
	// Optional; when set they must match the booking.
	GuestID    string `json:"guestId,omitempty" binding:"omitempty,uuid"`
	HostID     string `json:"hostId,omitempty" binding:"omitempty,uuid"`
	PropertyID string `json:"propertyId,omitempty" binding:"omitempty,uuid"`
}

type SendMessageRequest struct {
	MessageText string `json:"messageText"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
