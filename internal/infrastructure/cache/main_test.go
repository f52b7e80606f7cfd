package cache_test

import (
	"os"
	"testing"

	"github.com/Hiro-mackay/avatar-face/tests/testutil"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.CleanupTestEnvironment()
	os.Exit(code)
}
