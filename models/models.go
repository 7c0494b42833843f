/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"regexp"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/retailstore/errors"
)

// Default partitions for each collection. All rows of a given entity type
// share one partition unless the caller supplies another.
const (
	CustomerPartition = "Customers"
	ProductPartition  = "Products"
	OrderPartition    = "Orders"
)

// TrackingPrefix is the fixed tag prepended to derived order tracking ids.
const TrackingPrefix = "TRK-"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,}$`)

// TableEntity carries the common persisted shape shared by every record:
// a two-part (partition, row) key, an opaque ETag version token, and a
// store-assigned last-write timestamp. An empty ETag means never persisted.
type TableEntity struct {
	PartitionKey string    `json:"PartitionKey" dynamodbav:"PartitionKey"`
	RowKey       string    `json:"RowKey" dynamodbav:"RowKey"`
	ETag         string    `json:"ETag,omitempty" dynamodbav:"ETag"`
	Timestamp    time.Time `json:"Timestamp,omitempty" dynamodbav:"Timestamp"`
}

// EntityKey returns the (partition, row) key pair.
func (e *TableEntity) EntityKey() (string, string) {
	return e.PartitionKey, e.RowKey
}

// SetEntityKey assigns the (partition, row) key pair.
func (e *TableEntity) SetEntityKey(partition, row string) {
	e.PartitionKey = partition
	e.RowKey = row
}

// EntityTag returns the current ETag version token.
func (e *TableEntity) EntityTag() string {
	return e.ETag
}

// SetEntityTag assigns the ETag version token.
func (e *TableEntity) SetEntityTag(tag string) {
	e.ETag = tag
}

// SetTimestamp assigns the store-side last-write time.
func (e *TableEntity) SetTimestamp(t time.Time) {
	e.Timestamp = t
}

// CustomerProfile is a retail customer record.
type CustomerProfile struct {
	TableEntity

	CustomerId       string    `json:"CustomerId" dynamodbav:"CustomerId"`
	Name             string    `json:"Name" dynamodbav:"Name"`
	Email            string    `json:"Email" dynamodbav:"Email"`
	Address          string    `json:"Address" dynamodbav:"Address"`
	Phone            string    `json:"Phone" dynamodbav:"Phone"`
	RegistrationDate time.Time `json:"RegistrationDate" dynamodbav:"RegistrationDate"`
}

// Validate checks the required profile fields and their formats.
func (c *CustomerProfile) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Name", "required")
	}
	if c.Email == "" {
		return errors.NewValidationError("Email", "required")
	}
	if !strfmt.Default.Validates("email", c.Email) {
		return errors.NewValidationError("Email", "invalid email address")
	}
	if c.Address == "" {
		return errors.NewValidationError("Address", "required")
	}
	if c.Phone == "" {
		return errors.NewValidationError("Phone", "required")
	}
	if !phonePattern.MatchString(c.Phone) {
		return errors.NewValidationError("Phone", "invalid phone number")
	}
	return nil
}

// Product is a catalog item. ImageUrl, when set, points at a blob in the
// product image container.
type Product struct {
	TableEntity

	ProductId   string  `json:"ProductId" dynamodbav:"ProductId"`
	Name        string  `json:"Name" dynamodbav:"Name"`
	Price       float64 `json:"Price" dynamodbav:"Price"`
	Description string  `json:"Description,omitempty" dynamodbav:"Description"`
	ImageUrl    string  `json:"ImageUrl,omitempty" dynamodbav:"ImageUrl"`
}

// Validate checks the required product fields. ProductId doubles as the
// row key, so it can never be blank.
func (p *Product) Validate() error {
	if p.ProductId == "" {
		return errors.NewValidationError("ProductId", "required")
	}
	if p.Name == "" {
		return errors.NewValidationError("Name", "required")
	}
	if p.Price <= 0 {
		return errors.NewValidationError("Price", "must be greater than 0")
	}
	return nil
}

// OrderStatus enumerates the order lifecycle. The set is open-ended;
// Pending is the initial value stamped at creation.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Order references a customer and a product by plain identifier. The store
// enforces neither reference; a dangling reference is resolved (or reported)
// at read time.
type Order struct {
	TableEntity

	CustomerId string      `json:"CustomerId" dynamodbav:"CustomerId"`
	ProductId  string      `json:"ProductId" dynamodbav:"ProductId"`
	Price      float64     `json:"Price" dynamodbav:"Price"`
	TrackingId string      `json:"TrackingId,omitempty" dynamodbav:"TrackingId"`
	OrderDate  time.Time   `json:"OrderDate" dynamodbav:"OrderDate"`
	Status     OrderStatus `json:"Status,omitempty" dynamodbav:"Status"`
}

// Validate checks the required order fields. A zero price is allowed on
// input; it asks the workflow to resolve the price from the product.
func (o *Order) Validate() error {
	if o.CustomerId == "" {
		return errors.NewValidationError("CustomerId", "required")
	}
	if o.ProductId == "" {
		return errors.NewValidationError("ProductId", "required")
	}
	if o.Price < 0 {
		return errors.NewValidationError("Price", "must be greater than 0")
	}
	return nil
}

// TrackingId derives the tracking identifier for an order row key: the fixed
// prefix followed by the first eight characters of the key.
func TrackingId(rowKey string) string {
	if len(rowKey) > 8 {
		rowKey = rowKey[:8]
	}
	return TrackingPrefix + rowKey
}
