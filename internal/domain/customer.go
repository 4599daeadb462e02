package domain

import "time"

// Customer person who books a venue. Customers belong to an owner.
type Customer struct {
	ID        int64
	OwnerID   int64
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
}
