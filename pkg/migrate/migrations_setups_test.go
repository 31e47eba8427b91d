package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rafaelduarte/gamesetup-backend/pkg/migrate"
)

func TestSetupsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_setups.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no setups migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS setups",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (budget > 0)",
		"CHECK (tier IN ('minimum', 'intermediate', 'premium'))",
		"CREATE INDEX IF NOT EXISTS idx_setups_user_id",
		"DROP TABLE IF EXISTS setups",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUsersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"email         TEXT NOT NULL UNIQUE",
		"DROP TABLE IF EXISTS users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestDialectFor(t *testing.T) {
	cases := map[string]string{
		"sqlite":   "sqlite3",
		"SQLite3":  "sqlite3",
		"postgres": "postgres",
	}
	for driver, want := range cases {
		got, err := migrate.DialectFor(driver)
		if err != nil {
			t.Fatalf("dialect for %q: %v", driver, err)
		}
		if got != want {
			t.Errorf("dialect for %q: got %q want %q", driver, got, want)
		}
	}

	if _, err := migrate.DialectFor("mysql"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
