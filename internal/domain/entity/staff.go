package entity

// Role scopes what a logged-in user may do.
type Role string

const (
	RolePatient      Role = "Patient"
	RoleIntern       Role = "Intern"
	RoleDoctor       Role = "Doctor"
	RoleAdmin        Role = "Admin"
	RoleReceptionist Role = "Receptionist"
	RoleSystem       Role = "System"
)

// StaffUser is a hospital professional from the fixed demo roster.
// Passwords are bcrypt hashes seeded at startup.
type StaffUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

// Actor converts the staff user into its audit identity.
func (s *StaffUser) Actor() Actor {
	return Actor{ID: s.ID, Name: s.Name, Role: s.Role}
}

// Clone returns a copy of the staff record.
func (s *StaffUser) Clone() *StaffUser {
	cp := *s
	return &cp
}
