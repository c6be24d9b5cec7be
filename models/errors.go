package models

import "errors"

var (
	ErrSkuNotFound     = errors.New("SKU not found")
	ErrDuplicateSku    = errors.New("SKU already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrZeroQuantity    = errors.New("movement quantity cannot be zero")
)
