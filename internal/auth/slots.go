package auth

// Slot names one credential slot and the routes tied to it.
type Slot struct {
	Name      string
	Key       string
	LoginPath string
	HomePath  string
}

var (
	// Resident is the slot for resident accounts.
	Resident = Slot{Name: "resident", Key: "token", LoginPath: "/login", HomePath: "/dashboard"}
	// Admin is the slot for administrators, independent of Resident.
	Admin = Slot{Name: "admin", Key: "adminToken", LoginPath: "/admin-login", HomePath: "/admin/dashboard"}
)
