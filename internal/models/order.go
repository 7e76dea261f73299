package models

import "time"

// OrderRequest represents an incoming order submission
type OrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Zip          string      `json:"zip"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

// OrderItem represents a single line in an order
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents a confirmed order
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}
