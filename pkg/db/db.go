package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/models"
)

// DB is the local mirror of the farm data backend. Production deployments
// usually point the service at the hosted backend instead; this one backs
// development, the seed command and tests.
type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	logger := common.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		if dialector.Name() == "sqlite" {
			if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				log.Fatal("Failed to enable sqlite foreign key support", err)
			}
			if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
		}

		if err := instance.Conn.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	dbPath, found := os.LookupEnv(common.EnvKeyAgroDbPath)
	if !found {
		dbPath = "agroalert.db"
	}
	return UseSqliteFileDialector(dbPath)
}

func UseSqliteFileDialector(path string) gorm.Dialector {
	return sqlite.Open(path)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UseMysqlDialector(dsn string) gorm.Dialector {
	return mysql.Open(dsn)
}
