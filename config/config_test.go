package config

import (
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

// clearEnv unsets every variable Config reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"AVATAR_DEBUG", "AVATAR_LOG_LEVEL", "AVATAR_PREFAB_DIR", "AVATAR_WATCH", "AVATAR_TPS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadLayering(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{LogLevel: "info", PrefabDir: "prefabs", TPS: 60},
		},
		{
			name: "env",
			env:  map[string]string{"AVATAR_DEBUG": "true", "AVATAR_LOG_LEVEL": "debug", "AVATAR_WATCH": "1", "AVATAR_TPS": "120"},
			want: Config{Debug: true, LogLevel: "debug", PrefabDir: "prefabs", Watch: true, TPS: 120},
		},
		{
			name: "flags_beat_env",
			env:  map[string]string{"AVATAR_PREFAB_DIR": "/etc/avatar", "AVATAR_LOG_LEVEL": "warn"},
			args: []string{"-prefabs", "./local", "-log-level", "trace"},
			want: Config{LogLevel: "trace", PrefabDir: "./local", TPS: 60},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			got, err := Load("test", c.args)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != c.want {
				t.Fatalf("config = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	clearEnv(t)
	if _, err := Load("test", []string{"-tps", "0"}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero tps: got %v", err)
	}
	if _, err := Load("test", []string{"-log-level", "loud"}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("bad level: got %v", err)
	}
	t.Setenv("AVATAR_TPS", "fast")
	if _, err := Load("test", nil); err == nil {
		t.Fatalf("non-numeric env should fail")
	}
}

func TestLogger(t *testing.T) {
	cfg := Config{LogLevel: "debug", TPS: 30}
	if lg := cfg.Logger(); lg.Level != logrus.DebugLevel {
		t.Fatalf("level = %v", lg.Level)
	}
	if d := cfg.TickDuration(); d != 1.0/30 {
		t.Fatalf("tick = %v", d)
	}
}
