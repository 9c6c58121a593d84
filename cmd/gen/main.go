package main

import (
	"medico/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Generates typed query helpers for every persisted model. The output is not
// committed; run it locally when exploring queries against the schema.
func main() {
	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	gen.ApplyBasic(model.All()...)

	gen.Execute()
}
