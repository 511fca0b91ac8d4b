// seed_mrp genera un script SQL para poblar maestros de materiales y listas de materiales
// a partir de las exportaciones CSV del ERP anterior (ISO-8859-1, separador ';', coma decimal).
//
// Uso: go run ./cmd/seed_mrp <organization_id> <plant_id> [materiales.csv] [bom.csv]
// Por defecto busca materiales.csv y bom.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_mrp.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_mrp <organization_id> <plant_id> [materiales.csv] [bom.csv]")
		os.Exit(2)
	}
	orgID, plantID := os.Args[1], os.Args[2]
	materialsPath, bomPath := "materiales.csv", "bom.csv"
	if len(os.Args) > 3 {
		materialsPath = os.Args[3]
	}
	if len(os.Args) > 4 {
		bomPath = os.Args[4]
	}

	materials, err := readFile(materialsPath, parseMaterials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer materiales: %v\n", err)
		os.Exit(1)
	}
	boms, err := readFile(bomPath, parseBOM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer BOM: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_mrp.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, orgID, plantID, materials, boms); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d materiales, %d líneas de BOM\n", outPath, len(materials), len(boms))
}

// readFile abre path y lo decodifica de ISO-8859-1 antes de parsearlo.
func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
