package models

import "time"

// HotelCheckIn is a guest registration record created by hotel accounts. It
// is independent of tourist gamification and only feeds read-only analytics.
type HotelCheckIn struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotel_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	OriginCity  string    `json:"origin_city"`
	TripPurpose string    `json:"trip_purpose"`
	PartySize   int       `json:"party_size"`
	CheckInDate time.Time `json:"check_in_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterGuestRequest is the hotel payload for registering a guest stay.
type RegisterGuestRequest struct {
	GuestName   string    `json:"guest_name" binding:"required"`
	GuestEmail  string    `json:"guest_email" binding:"omitempty,email"`
	OriginCity  string    `json:"origin_city"`
	TripPurpose string    `json:"trip_purpose"`
	PartySize   int       `json:"party_size" binding:"gte=1"`
	CheckInDate time.Time `json:"check_in_date"`
}

// HotelAnalytics is the secretariat summary over guest registrations.
type HotelAnalytics struct {
	TotalGuests      int            `json:"total_guests"`
	ByOriginCity     map[string]int `json:"by_origin_city"`
	ByTripPurpose    map[string]int `json:"by_trip_purpose"`
	AveragePartySize float64        `json:"average_party_size"`
}
