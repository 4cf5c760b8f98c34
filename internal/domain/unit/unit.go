package unit

import "time"

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// Coordinate is a WGS84 point. Units without a geocoded address carry none.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Unit is a rentable listing. Owned by the external catalog; read-only here.
type Unit struct {
	ID           string
	HostID       string
	Name         string
	City         string
	Coordinate   *Coordinate
	NightlyRate  float64
	MaxOccupancy int
	Amenities    []string
	Status       Status
	ListedAt     time.Time
}

// HasAmenity reports whether the unit advertises the given amenity tag.
func (u Unit) HasAmenity(tag string) bool {
	for _, a := range u.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}
