package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/invoicecreator/invoice-creator/internal/database"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/security"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

func newServiceDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newFastHasherForTest() *security.Argon2idHasher {
	return security.NewArgon2idHasher(security.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

func newAuthServiceWithStoreForTest(creds CredentialStore) *AuthService {
	return NewAuthService(creds, NewIdentitySession(), newFastHasherForTest(), observability.NewDiscardLogger())
}

// newAuthServiceForTest wires the service over sqlite and an in-memory
// session store and returns a fresh session handle.
func newAuthServiceForTest(t *testing.T) (*AuthService, *session.Handle) {
	t.Helper()
	db := newServiceDBForTest(t)
	creds := NewCredentialStore(repository.NewUserRepository(db), repository.NewLocalCredentialRepository(db))
	store := session.NewMemoryStore(time.Hour)
	return newAuthServiceWithStoreForTest(creds), session.NewHandle(store, session.NewID())
}
