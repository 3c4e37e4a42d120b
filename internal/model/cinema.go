package model

import "time"

// Cinema represents a cinema location.  A cinema contains multiple
// rooms.  Amenities are stored as a JSON array in the database.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – cinema name.
//  Address      – street address.
//  City         – city the cinema is located in.
//  Longitude    – optional geographic longitude.
//  Latitude     – optional geographic latitude.
//  ImageURL     – optional image for listings.
//  Phone        – optional contact number.
//  HasParking   – whether the cinema offers parking.
//  IsAccessible – whether the cinema is wheelchair accessible.
//  Amenities    – optional list of amenity names (cinemas.amenities JSON).
//  CreatedAt    – creation timestamp.
type Cinema struct {
	ID           uint64    `json:"id"`                  // cinemas.id
	Name         string    `json:"name"`                // cinemas.name
	Address      string    `json:"address"`             // cinemas.address
	City         string    `json:"city"`                // cinemas.city
	Longitude    *float64  `json:"longitude,omitempty"` // cinemas.longitude (nullable)
	Latitude     *float64  `json:"latitude,omitempty"`  // cinemas.latitude (nullable)
	ImageURL     *string   `json:"image_url,omitempty"` // cinemas.image_url (nullable)
	Phone        *string   `json:"phone,omitempty"`     // cinemas.phone (nullable)
	HasParking   bool      `json:"has_parking"`         // cinemas.has_parking
	IsAccessible bool      `json:"is_accessible"`       // cinemas.is_accessible
	Amenities    []string  `json:"amenities,omitempty"` // cinemas.amenities (JSON)
	CreatedAt    time.Time `json:"created_at"`          // cinemas.created_at
}
