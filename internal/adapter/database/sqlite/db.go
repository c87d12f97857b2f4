package sqlite

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/mattn/go-sqlite3"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rs/zerolog"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

func New() *sql.DB {
	dbPath := os.Getenv("DATABASE_PATH")

	if dbPath == "" {
		dbPath = "mygene.db"
	}

	migrationDB, err := sql.Open("sqlite3", dbPath)

	if err != nil {
		log.Fatal(err)
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")

	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	RunMigrations(migrationDB, migrationsPath)
	migrationDB.Close()

	sqlDB, err := otelsql.Open("sqlite3", dbPath,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("mygene"),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)

	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger := zerolog.New(os.Stdout)

	return sqldblogger.OpenDriver(dbPath, sqlDB.Driver(), zerologadapter.New(logger))
}

// NewDB never fails: connection problems inside New are fatal because the
// process cannot serve without its database.
func NewDB() *DB {
	return Wrap(New())
}

// Wrap builds the adapter around an existing connection; tests use it with an
// in-memory database.
func Wrap(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		log.Fatal("Failed to create migration driver:", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)
	if err != nil {
		log.Fatal("Failed to create migration instance:", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Failed to run migrations:", err)
	}
}
