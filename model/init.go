package model

import "safai/platform"

func InstallDB() {
	db := platform.DB
	if err := db.AutoMigrate(
		&User{},
		&Conversation{},
		&Message{},
		&ResearchNote{}); err != nil {
		panic(err)
	}
}
