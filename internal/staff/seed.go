package staff

// DevAccounts returns the demo cashier and manager for in-memory mode, both
// using pin.
func DevAccounts(pin string) ([]Staff, error) {
	hash, err := HashPIN(pin)
	if err != nil {
		return nil, err
	}
	return []Staff{
		{ID: "staff-cashier", Username: "cashier", Name: "Thu ngân", Role: RoleCashier, PINHash: hash, Active: true},
		{ID: "staff-manager", Username: "manager", Name: "Quản lý", Role: RoleManager, PINHash: hash, Active: true},
	}, nil
}
