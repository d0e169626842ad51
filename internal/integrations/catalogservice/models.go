package catalogservice

// Service is the catalog's definition of a bookable consulting service.
// Duration and buffers feed the conflict engine; name and price get
// denormalized onto the booking row at commit time.
type Service struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	DurationMinutes     int     `json:"duration_minutes"`
	BufferBeforeMinutes int     `json:"buffer_before_minutes"`
	BufferAfterMinutes  int     `json:"buffer_after_minutes"`
	Price               float64 `json:"price"`
	IsActive            bool    `json:"is_active"`
}

// Consultant is the catalog's view of a consultant profile.
type Consultant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse is the catalog's error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
