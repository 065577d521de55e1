package postgres

import (
	"regexp"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeedMigration_AdminHashMatchesPassword(t *testing.T) {
	sql, err := migrations.ReadFile("migrations/00003_seed_admin.sql")
	if err != nil {
		t.Fatalf("read seed migration: %v", err)
	}

	m := regexp.MustCompile(`'(\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53})'`).FindSubmatch(sql)
	if m == nil {
		t.Fatalf("no bcrypt hash found in seed migration")
	}
	if err := bcrypt.CompareHashAndPassword(m[1], []byte("admin123")); err != nil {
		t.Fatalf("seeded hash does not verify admin123: %v", err)
	}
}
