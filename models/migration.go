package models

import (
	"log"

	"github.com/jiorblanc/estoque/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Product{}, &Variant{},
		&Movement{},
		&SkuMapping{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
