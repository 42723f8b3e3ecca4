// token emite un JWT firmado con JWT_SECRET para un usuario y rol, útil en desarrollo y pruebas manuales.
//
// Uso: go run ./cmd/token <user_id> <role>
// Roles: store_keeper, procurement, sales, super_admin.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/warehouse-api/internal/domain/access"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/jwt"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: token <user_id> <role>")
		os.Exit(2)
	}
	userID, role := os.Args[1], os.Args[2]
	if !access.ValidRole(role) {
		fmt.Fprintf(os.Stderr, "Rol desconocido: %s\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
