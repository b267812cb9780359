package models

// Application is an API client registered by a developer.
type Application struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Permission  Permission `json:"permission"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   *string    `json:"updatedAt"`
	DisabledAt  *string    `json:"disabledAt"`
}

// Permission is the access an application holds.
type Permission struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}
