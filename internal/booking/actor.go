package booking

// Role is the authorization role of an authenticated caller.
type Role string

const (
    RoleCustomer Role = "CUSTOMER"
    RoleAdmin    Role = "ADMIN"
    RoleProvider Role = "PROVIDER"
)

// Actor is the authenticated identity on whose behalf an operation
// runs.  The transport builds it from the access token and passes it to
// every lifecycle call.
type Actor struct {
    UserID uint64
    Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanConfirmPayments reports whether the actor speaks for the payment
// provider.
func (a Actor) CanConfirmPayments() bool { return a.Role == RoleProvider || a.Role == RoleAdmin }

// owns reports whether the actor may see or cancel a reservation of userID.
func (a Actor) owns(userID uint64) bool { return a.IsAdmin() || (a.UserID != 0 && a.UserID == userID) }
