package user

// Principal identifies an authenticated account resolved from a bearer
// token by the gatekeeper service.
type Principal struct {
	UserID string
	Email  string
}
