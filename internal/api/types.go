package api

import "time"

// Role values the server assigns; admin is the sole authorization discriminant.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Item is a catalog record. Price is a decimal string; the server is the
// authority on its value.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Order is immutable once created; the client only displays it.
// Amount is server-computed.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Amount    string      `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	Lines     []OrderLine `json:"order_descriptions"`
}

type OrderLine struct {
	ID       int64 `json:"id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
	// Item is nil when the catalog item was deleted after the order.
	Item *Item `json:"item"`
}

// OrderItemRef is the minimal line shape order creation requires.
type OrderItemRef struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}
