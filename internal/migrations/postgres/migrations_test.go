package postgres

import (
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	names, err := Names()
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) == 0 || names[0] != "0001_init.sql" {
		t.Fatalf("Names() = %v, want 0001_init.sql first", names)
	}

	content, err := migrationsFS.ReadFile(migrationsDir + "/" + names[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	stmts := Statements(string(content))
	for _, table := range []string{"users", "profiles", "daily_metrics", "training_sessions", "spravato_sessions", "jump_tests"} {
		found := false
		for _, stmt := range stmts {
			if strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no CREATE TABLE statement for %s", table)
		}
	}
}

func TestStatements(t *testing.T) {
	t.Parallel()

	got := Statements("CREATE TABLE a (id INT);\n\n  ;CREATE INDEX b ON a (id);\n")
	if len(got) != 2 || got[0] != "CREATE TABLE a (id INT)" || got[1] != "CREATE INDEX b ON a (id)" {
		t.Errorf("Statements() = %q", got)
	}
}
