package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleAdmin        = "admin"
	RoleNutritionist = "nutritionist"
	RoleClient       = "client"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

// CanHostCall reports whether the role may originate a video consultation.
// Clients may answer calls but consultations are started by the practice side.
func CanHostCall(role string) bool { return role == RoleNutritionist || role == RoleAdmin }
