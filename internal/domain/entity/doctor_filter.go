package entity

// DoctorFilter is a domain-level filter for listing doctors.
// Empty fields impose no constraint.
type DoctorFilter struct {
	Status         string // engagement_status, exact
	Category       string // doctor_category, exact
	Specialization string // substring (ILIKE)
	City           string // substring (ILIKE)
	State          string // substring (ILIKE)
	Search         string // substring over full_name, mobile_number, email
}
