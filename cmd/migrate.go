package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var migrationsPath string

func migrateDSN() string {
	if dsn := os.Getenv("MIGRATE_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	db := os.Getenv("MYSQL_DB")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true", user, pass, host, port, db)
}

var migrateUpCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrationsPath, migrateDSN())
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("Schema is up to date.")
				return
			}
			fmt.Printf("Migrate failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "db:rollback",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrationsPath, migrateDSN())
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()
		if err := m.Steps(-1); err != nil {
			fmt.Printf("Rollback failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Rolled back one migration.")
	},
}

func init() {
	migrateUpCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")
	migrateDownCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")
	rootCmd.AddCommand(migrateUpCmd)
	rootCmd.AddCommand(migrateDownCmd)
}
