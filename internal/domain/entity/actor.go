package entity

// Roles válidos para el actor autenticado.
const (
	RoleStoreKeeper = "store_keeper"
	RoleProcurement = "procurement"
	RoleSales       = "sales"
	RoleSuperAdmin  = "super_admin"
)

// Actor identidad que ejecuta una operación. ID se guarda como created_by en auditoría.
type Actor struct {
	ID   string
	Role string
}
