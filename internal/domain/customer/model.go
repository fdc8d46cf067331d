package customer

// Customer is the host's customer account
type Customer struct {
	ID                int64  `db:"id" json:"id"`
	Email             string `db:"email" json:"email"`
	Username          string `db:"username" json:"username"`
	ShippingAddressID *int64 `db:"shipping_address_id" json:"shipping_address_id,omitempty"`
}

// Address is a customer address, only the fields this service reads
type Address struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}
