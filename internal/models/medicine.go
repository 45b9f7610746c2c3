package models

import "github.com/google/uuid"

type Medicine struct {
	ID          uuid.UUID `json:"id"`
	GenericName string    `json:"generic_name"`
	BrandName   string    `json:"brand_name"`
	Batch       string    `json:"batch"`
	Expiry      string    `json:"expiry"`
	Strength    string    `json:"strength"`
	NetQuantity int       `json:"net_quantity"`
}
