package service

// PathGate decides whether a request path is subject to authentication.
// Implementations must be pure and safe for concurrent use.
type PathGate interface {
	RequiresAuth(path string) bool
}
