package models

// Settings represents application-wide settings
type Settings struct {
	Timezone string `json:"timezone"` // IANA timezone name, or "Local" for the system timezone
}
