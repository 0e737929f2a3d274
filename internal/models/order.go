package models

import "time"

// Order is a simple ad-hoc order log entry. No lifecycle beyond
// create, edit and delete.
type Order struct {
	ID           int
	Name         string
	OrderDetails string
	Phone        string
	OrderDate    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DummyOrder receives order data from a JSON request before validation.
// An empty order date means today.
type DummyOrder struct {
	Name         string `json:"name" validate:"required"`
	OrderDetails string `json:"order_details" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	OrderDate    string `json:"order_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
