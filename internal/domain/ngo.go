package domain

import "time"

type NGO struct {
	ID        int64
	UserID    int64
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Principal is the caller resolved from a login user id. A login may be
// linked to an employee, an NGO, or both.
type Principal struct {
	UserID   int64
	Employee *Employee
	NGO      *NGO
}

func (p Principal) IsEmployee() bool { return p.Employee != nil }

func (p Principal) IsNGO() bool { return p.NGO != nil }
