package models

type Address struct {
	ID          int64  `json:"address_id"`
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	PostCode    string `json:"post_code"`
	State       string `json:"state"`
	PhoneNumber string `json:"phone_number"`
}
