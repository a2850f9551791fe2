package domain

import "time"

type RoomCategory string

const (
	CategoryEconomy  RoomCategory = "economy"
	CategoryStandard RoomCategory = "standard"
	CategoryDeluxe   RoomCategory = "deluxe"
	CategoryLuxe     RoomCategory = "luxe"
)

var categoryLabels = map[RoomCategory]string{
	CategoryEconomy:  "Economy",
	CategoryStandard: "Standard",
	CategoryDeluxe:   "Deluxe",
	CategoryLuxe:     "Luxe",
}

func ParseRoomCategory(s string) (RoomCategory, bool) {
	switch RoomCategory(s) {
	case CategoryEconomy, CategoryStandard, CategoryDeluxe, CategoryLuxe:
		return RoomCategory(s), true
	default:
		return "", false
	}
}

// Label returns the display name for the category.
func (c RoomCategory) Label() string {
	return categoryLabels[c]
}

type RoomStatus string

const (
	RoomFree   RoomStatus = "free"
	RoomBooked RoomStatus = "booked"
)

func ParseRoomStatus(s string) (RoomStatus, bool) {
	switch RoomStatus(s) {
	case RoomFree, RoomBooked:
		return RoomStatus(s), true
	default:
		return "", false
	}
}

// RoomData is a room type template; physical rooms reference it.
// Price is stored in minor currency units (kopecks).
type RoomData struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Category    RoomCategory `json:"category"`
	SingleBeds  *int         `json:"single_beds"`
	DoubleBeds  *int         `json:"double_beds"`
	Price       int64        `json:"price"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Persons returns sleeping capacity: singles plus two per double bed,
// or 0 when either bed count is absent.
func (rd *RoomData) Persons() int {
	if rd.SingleBeds == nil || rd.DoubleBeds == nil {
		return 0
	}
	return *rd.SingleBeds + *rd.DoubleBeds*2
}

type Room struct {
	ID          int64      `json:"id"`
	RoomDataID  int64      `json:"room_data_id"`
	RoomData    *RoomData  `json:"room_data,omitempty"`
	Number      string     `json:"number"`
	Status      RoomStatus `json:"status"`
	IsAvailable bool       `json:"is_available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateRoomDataRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	SingleBeds  *int   `json:"single_beds"`
	DoubleBeds  *int   `json:"double_beds"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type UpdateRoomDataRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	SingleBeds  *int    `json:"single_beds,omitempty"`
	DoubleBeds  *int    `json:"double_beds,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateRoomRequest struct {
	RoomDataID int64  `json:"room_data_id"`
	Number     string `json:"number"`
}
