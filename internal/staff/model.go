package staff

import "time"

type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
)

type Staff struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	PINHash   string    `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
