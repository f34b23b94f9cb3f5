package model

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -sql -output role.gen.go

// Role is the access level of a user. Every user has exactly one role.
// New registrations always get RoleStandard; elevation happens out of band
// (ticketctl user promote) or through the admin-only user update endpoint.
type Role int

const (
	RoleStandard Role = iota
	RoleAdministrator
)
