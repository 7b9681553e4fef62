package user

// Principal is the authenticated caller established by token introspection.
// Handlers pass UserID to the membership guards and record Email as the
// identity of record on writes.
type Principal struct {
	UserID string
	Email  string
}
