package models

type CheckoutRequest struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Slug  string  `json:"slug"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
