package models

import (
	"strings"
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	OverpricedFare  IssueCategory = "overpriced_fare"
	PoorService     IssueCategory = "poor_service"
	GasStation      IssueCategory = "gas_station"
	TrafficAccident IssueCategory = "traffic_accident"
)

// Categories lists every category in display order
var Categories = []IssueCategory{OverpricedFare, PoorService, GasStation, TrafficAccident}

// Label renders the category for display, e.g. "Overpriced Fare"
func (c IssueCategory) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "pending"
	InProgress IssueStatus = "in_progress"
	Resolved   IssueStatus = "resolved"
	Urgent     IssueStatus = "urgent"
)

// IssuePriority enum
type IssuePriority string

const (
	Low      IssuePriority = "low"
	Medium   IssuePriority = "medium"
	High     IssuePriority = "high"
	Critical IssuePriority = "critical"
)

// AnonymousReporter is the only reporter label a report ever carries
const AnonymousReporter = "Anonymous"

// ReportLocation describes where an issue happened, either as a route
// between two stations or as a free-form address.
type ReportLocation struct {
	StartStation string   `bson:"startStation,omitempty" json:"startStation,omitempty"`
	EndStation   string   `bson:"endStation,omitempty" json:"endStation,omitempty"`
	Address      string   `bson:"address,omitempty" json:"address,omitempty"`
	Latitude     *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// RouteKey is the label a location is grouped under on the dashboard.
// An empty key means the location is not counted.
func (l *ReportLocation) RouteKey() string {
	if l == nil {
		return ""
	}
	if l.StartStation != "" && l.EndStation != "" {
		return l.StartStation + " to " + l.EndStation
	}
	return l.Address
}

type ContactInfo struct {
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// IssueReport represents a transportation issue reported anonymously
type IssueReport struct {
	ID          string          `bson:"id" json:"id"`
	Type        IssueCategory   `bson:"type" json:"type"`
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description" json:"description"`
	Location    *ReportLocation `bson:"location,omitempty" json:"location,omitempty"`
	Status      IssueStatus     `bson:"status" json:"status"`
	Priority    IssuePriority   `bson:"priority" json:"priority"`
	ReportedBy  string          `bson:"reportedBy" json:"reportedBy"`
	ReportedAt  time.Time       `bson:"reportedAt" json:"reportedAt"`
	AssignedTo  string          `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ResolvedAt  *time.Time      `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	Resolution  string          `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ContactInfo *ContactInfo    `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
}
