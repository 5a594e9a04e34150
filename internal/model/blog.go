package model

import "time"

// Blog is an article authored from the agent/admin dashboard. VisitCount is
// bumped through a dedicated endpoint, not by editing the record.
type Blog struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	AuthorEmail string    `json:"authorEmail"`
	AuthorName  string    `json:"authorName"`
	VisitCount  int       `json:"visitCount"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Review is a public product/service review shown on the storefront,
// sorted newest-first for display.
type Review struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
