package model

// Role - роль пользователя. Роли упорядочены: Admin включает все возможности User.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// Level возвращает порядковый уровень роли; неизвестная роль имеет уровень 0.
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool { return r.Level() > 0 }

// Covers сообщает, достаточно ли роли r для ресурса, требующего минимум min.
func (r Role) Covers(min Role) bool {
	return r.Valid() && r.Level() >= min.Level()
}

// ItemStatus - статус предмета. Переходы между статусами не ограничены.
type ItemStatus string

const (
	ItemAvailable   ItemStatus = "Available"
	ItemInUse       ItemStatus = "InUse"
	ItemUnavailable ItemStatus = "Unavailable"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemInUse, ItemUnavailable:
		return true
	}
	return false
}

// LocationStatus - статус места хранения.
type LocationStatus string

const (
	LocationAvailable   LocationStatus = "Available"
	LocationUnavailable LocationStatus = "Unavailable"
)

func (s LocationStatus) Valid() bool {
	return s == LocationAvailable || s == LocationUnavailable
}

// LocationType - вид места хранения.
type LocationType string

const (
	LocationCupboard LocationType = "Cupboard"
	LocationRoom     LocationType = "Room"
	LocationShelf    LocationType = "Shelf"
	LocationBox      LocationType = "Box"
	LocationDrawer   LocationType = "Drawer"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationCupboard, LocationRoom, LocationShelf, LocationBox, LocationDrawer:
		return true
	}
	return false
}
