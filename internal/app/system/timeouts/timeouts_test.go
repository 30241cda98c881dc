package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/dealerhub/internal/app/system/timeouts"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Upstream: 3 * time.Second})

	if got := timeouts.Upstream(); got != 3*time.Second {
		t.Errorf("Upstream: got %v, want %v", got, 3*time.Second)
	}
	if got := timeouts.Login(); got != timeouts.DefaultLogin {
		t.Errorf("Login: got %v, want default %v", got, timeouts.DefaultLogin)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	t.Setenv("TIMEOUT_PING", "750ms")
	t.Setenv("TIMEOUT_UPLOAD", "2m")
	t.Setenv("TIMEOUT_LOGIN", "not-a-duration")

	if n := timeouts.ConfigureFromEnv(); n != 2 {
		t.Errorf("ConfigureFromEnv: configured %d, want 2", n)
	}
	cur := timeouts.Current()
	if cur.Ping != 750*time.Millisecond {
		t.Errorf("Ping: got %v", cur.Ping)
	}
	if cur.Upload != 2*time.Minute {
		t.Errorf("Upload: got %v", cur.Upload)
	}
	if cur.Login != timeouts.DefaultLogin {
		t.Errorf("Login: got %v, want default", cur.Login)
	}
}
