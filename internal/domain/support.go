package domain

import "time"

// MaxMessageLen is the longest reminder or support message kept, in characters.
const MaxMessageLen = 1000

// SupportStatus tells whether an admin has seen a support message.
type SupportStatus string

// Support message statuses. Unread moves to Read when an admin lists the inbox.
const (
	SupportStatusUnread SupportStatus = "unread"
	SupportStatusRead   SupportStatus = "read"
)

// SupportMessage is a message a portal user sends to the admins.
type SupportMessage struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Role      Role          `json:"role"`
	Message   string        `json:"message"`
	Status    SupportStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
