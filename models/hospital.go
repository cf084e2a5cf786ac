package models

// Hospital is read-only reference data fetched per screen.
type Hospital struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	ImageURL string    `json:"imageUrl"`
	Rating   float64   `json:"rating"`
	Services []Service `json:"services"`
}

// Service is owned by its parent hospital; its ID is unique within that
// hospital only.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"` // free-text label, e.g. "30 min"
}

// ServiceByID returns the hospital's service with the given ID, or nil.
func (h *Hospital) ServiceByID(id string) *Service {
	for i := range h.Services {
		if h.Services[i].ID == id {
			return &h.Services[i]
		}
	}
	return nil
}
