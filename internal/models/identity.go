package models

// Identity is the caller of a request as seen by authorization checks.
type Identity interface {
	IsAuthenticated() bool
	IsAdministrator() bool
	// AssignedTool returns the only tool a non-admin caller may update.
	AssignedTool() (uint64, bool)
	DisplayName() string
	Subject() uint64
}

// Anonymous is the identity of a request without a valid session.
type Anonymous struct{}

func (Anonymous) IsAuthenticated() bool {
	return false
}

func (Anonymous) IsAdministrator() bool {
	return false
}

func (Anonymous) AssignedTool() (uint64, bool) {
	return 0, false
}

func (Anonymous) DisplayName() string {
	return ""
}

func (Anonymous) Subject() uint64 {
	return 0
}

var (
	_ Identity = (*User)(nil)
	_ Identity = Anonymous{}
)
