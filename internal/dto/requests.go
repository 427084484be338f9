package dto

type RecipientInfo struct {
	Name              string `json:"name" binding:"required"`
	Location          string `json:"location" binding:"required"`
	PreferredDelivery string `json:"preferred_delivery" binding:"omitempty,oneof=BANK_DEPOSIT CASH_PICKUP MOBILE_WALLET HOME_DELIVERY"`
}

type OptimizeRoutesRequest struct {
	Amount             float64       `json:"amount" binding:"required,gt=0"`
	CurrencyFrom       string        `json:"currency_from" binding:"required,len=3"`
	CurrencyTo         string        `json:"currency_to" binding:"required,len=3"`
	OriginCountry      string        `json:"origin_country" binding:"required,len=2"`
	DestinationCountry string        `json:"destination_country" binding:"required,len=2"`
	SenderID           string        `json:"sender_id"`
	Recipient          RecipientInfo `json:"recipient_info" binding:"required"`
}

type ExecuteQuoteRequest struct {
	RouteID string `json:"route_id" binding:"required"`
}
