package model

// RoleAdmin is the only role the service issues or accepts.
const RoleAdmin = "admin"

// AdminIdentity is the authenticated principal carried by a session token
// and attached to the request context by the auth gate.
//
// Fields:
//
//	Email – the configured admin address the session was issued for.
//	Role  – always RoleAdmin for a valid session.
type AdminIdentity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
