package domain

import "time"

// Notification is a durable per-user notification record. Created server
// side, mutated (read flag) by user action, never deleted client side.
type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnreadCount counts the notifications still marked unread.
func UnreadCount(ns []Notification) int {
	n := 0
	for _, nt := range ns {
		if !nt.Read {
			n++
		}
	}
	return n
}
