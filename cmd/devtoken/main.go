// Command devtoken emite un JWT firmado con JWT_SECRET para probar la API en local.
// Los usuarios viven fuera de este servicio; en producción el token lo emite el proveedor de identidad.
//
//	go run ./cmd/devtoken -company <uuid> -role produccion
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Perfumeria-api/pkg/config"
	"github.com/jhoicas/Perfumeria-api/pkg/jwt"
)

func main() {
	companyID := flag.String("company", "", "company_id del token (obligatorio)")
	userID := flag.String("user", "dev-user", "user_id del token")
	role := flag.String("role", "admin", "admin | produccion | consulta")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
