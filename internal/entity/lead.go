package entity

import "time"

// Lead is a prospective customer's submitted contact and project-interest
// record. Rows are append-only: the store assigns ID and CreatedAt at insert
// time and no field is ever updated afterwards.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Service   string    `json:"service"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
