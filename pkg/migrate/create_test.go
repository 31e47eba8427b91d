package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSQLMigrationScaffoldsValidFile(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Price Index!!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}

	name := filepath.Base(path)
	if !sqlFileRe.MatchString(name) {
		t.Fatalf("scaffolded filename %q does not match the migration pattern", name)
	}
	if !strings.Contains(name, "add_price_index") {
		t.Fatalf("unexpected sanitized name in %q", name)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scaffold: %v", err)
	}
	txt := string(b)
	if !strings.Contains(txt, "-- +goose Up") || !strings.Contains(txt, "-- +goose Down") {
		t.Fatalf("scaffold missing goose markers:\n%s", txt)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("scaffolded dir should validate: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for name with no usable characters")
	}
}
