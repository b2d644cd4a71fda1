package models

// Role enum
type Role string

const (
	TrafficPolice        Role = "traffic_police"
	BusStationManager    Role = "bus_station_manager"
	TransportationOffice Role = "transportation_office"
	AnonymousRole        Role = "anonymous"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case TrafficPolice, BusStationManager, TransportationOffice, AnonymousRole:
		return true
	}
	return false
}

// Identity is the authenticated actor held for a session
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Location string `json:"location,omitempty"`
}
