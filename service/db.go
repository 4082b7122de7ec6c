package service

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"minter/common/model"
	. "minter/conf"
)

var DB *gorm.DB

func init() {
	var err error
	DB, err = gorm.Open(mysql.Open(MysqlDsn+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{PrepareStmt: true})
	if err != nil {
		panic(err)
	}
	if ResetDB {
		// reset the database
		err = model.DropTable(DB)
		if err != nil {
			panic(err)
		}
	}
	// sync the table structure to the database
	err = model.Migrate(DB)
	if err != nil {
		panic(err)
	}
}
