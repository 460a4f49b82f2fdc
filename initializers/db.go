package initializers

import (
	"campus-jobs-backend/config"
	"campus-jobs-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(db.Settings{
		Host:         conf.Host,
		Port:         conf.Port,
		Name:         conf.Name,
		User:         conf.User,
		Password:     conf.Password,
		MaxOpenConns: conf.MaxOpenConns,
		MaxIdleConns: conf.MaxIdleConns,
		Debug:        *conf.DebugMode,
		Migrate:      *conf.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload()
}
