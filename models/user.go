package models

// User is the back-office administrator of a tenant
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId"`
}

// Session is the persisted auth state
type Session struct {
	User         *User  `json:"user"`
	SessionID    string `json:"sessionId,omitempty"`
	IsAuthorized bool   `json:"isAuthenticated"`
}
