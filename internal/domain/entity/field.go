package entity

// Role is the inferred semantic purpose of a form control.
type Role string

const (
	RoleUnknown     Role = "unknown"
	RoleEmail       Role = "email"
	RolePhone       Role = "phone"
	RoleNationalID  Role = "national_id"
	RoleArabicName  Role = "arabic_name"
	RoleEnglishName Role = "english_name"
	RolePassword    Role = "password"
)

// Attributes is the subset of a control's HTML attributes the role heuristics
// look at. Matching is case-insensitive.
type Attributes struct {
	Type        string
	Name        string
	Placeholder string
}
