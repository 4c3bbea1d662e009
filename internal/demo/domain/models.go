// Package domain contains the demo catalog models and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Location is the venue type of a booking.
type Location string

const (
	LocationVirtual    Location = "virtual"
	LocationNexus      Location = "nexus"
	LocationOnSite     Location = "on_site"
	LocationOnLocation Location = "on_location"
)

// Valid reports whether the location is part of the catalog.
func (l Location) Valid() bool {
	_, ok := Catalog[l]
	return ok
}

// Demo is a scheduled customer-facing session. Rows are immutable after
// creation except for the derived revenue backfill; there is no delete.
type Demo struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Time    string       `gorm:"type:text;not null" json:"time"`
	Company string       `gorm:"type:text;not null" json:"company"`
	Type    string       `gorm:"type:text" json:"type"`

	Location        Location `gorm:"type:text;not null;index" json:"location"`
	LocationDetails string   `gorm:"type:text" json:"location_details,omitempty"`
	Attendees       int      `gorm:"not null" json:"attendees"`

	Date       time.Time    `gorm:"not null;index" json:"date"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Revenue    int64        `gorm:"not null;default:0" json:"revenue"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (Demo) TableName() string { return "demos" }
