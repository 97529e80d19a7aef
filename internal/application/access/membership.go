package access

import "context"

// MembershipStatus is the answer of a secondary membership source.
type MembershipStatus string

const (
	// MembershipUnknown means the provider has no opinion; the database
	// decision stands.
	MembershipUnknown MembershipStatus = "unknown"
	MembershipGranted MembershipStatus = "granted"
	MembershipDenied  MembershipStatus = "denied"
)

// MembershipProvider is the extension point for an external membership
// source (a CRM-side course membership, for instance). The resolver asks it
// only when the enrollment table denies access; a Granted answer overrides.
type MembershipProvider interface {
	Name() string
	Check(ctx context.Context, userID, courseID uint) (MembershipStatus, error)
}

// NullMembershipProvider is the database-only variant: it is always
// configured, always answers Unknown, and contributes nothing. Having it as
// an explicit type keeps "not implemented" visible and testable instead of
// hiding it behind a nil check.
type NullMembershipProvider struct{}

func NewNullMembershipProvider() *NullMembershipProvider {
	return &NullMembershipProvider{}
}

func (p *NullMembershipProvider) Name() string {
	return "none"
}

func (p *NullMembershipProvider) Check(ctx context.Context, userID, courseID uint) (MembershipStatus, error) {
	return MembershipUnknown, nil
}
