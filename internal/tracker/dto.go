package tracker

import "time"

// EntryResponse is the outward-facing representation of an entry.
type EntryResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	URL       string    `json:"url"`
	Platform  string    `json:"platform"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createRequest struct {
	Date     string `json:"date"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Status   Status `json:"status"`
}

type patchRequest struct {
	Date     *string `json:"date"`
	URL      *string `json:"url"`
	Platform *string `json:"platform"`
	Company  *string `json:"company"`
	Role     *string `json:"role"`
	Status   *Status `json:"status"`
}

func toResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Date:      e.Date,
		URL:       e.URL,
		Platform:  e.Platform,
		Company:   e.Company,
		Role:      e.Role,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
