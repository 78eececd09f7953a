// Package sessions keeps the suggestion service's session cookies between
// runs, so one-shot commands share the history of earlier ones.
package sessions

import "time"

// Cookie is the persisted part of a service cookie.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is what is stored for one service.
type Record struct {
	Service   string    `json:"service"`
	Cookies   []Cookie  `json:"cookies"`
	UpdatedAt time.Time `json:"updated_at"`
}
