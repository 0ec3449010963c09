package hostappconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	for _, key := range []string{"WP_ENV_HOME", "CAWEB_GUI", "CAWEB_RELEASE_TIMEOUT", "CAWEB_DOCKER_COMPOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.GUI {
		t.Fatal("GUI should default to false")
	}
	if s.ReleaseTimeout != 10*time.Second {
		t.Fatalf("ReleaseTimeout = %s, want 10s", s.ReleaseTimeout)
	}
	bin, args := s.ComposeArgs()
	if bin != "docker" || len(args) != 1 || args[0] != "compose" {
		t.Fatalf("ComposeArgs = %s %v", bin, args)
	}
}

func TestParseFromEnvironment(t *testing.T) {
	t.Setenv("WP_ENV_HOME", "/srv/wp-env")
	t.Setenv("CAWEB_GUI", "true")
	t.Setenv("CAWEB_RELEASE_TIMEOUT", "3s")
	t.Setenv("CAWEB_DOCKER_COMPOSE", "docker-compose")

	s, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Home != "/srv/wp-env" || !s.GUI || s.ReleaseTimeout != 3*time.Second {
		t.Fatalf("unexpected settings %+v", s)
	}
	bin, args := s.ComposeArgs()
	if bin != "docker-compose" || len(args) != 0 {
		t.Fatalf("ComposeArgs = %s %v", bin, args)
	}
}

func TestParseCredentials(t *testing.T) {
	t.Setenv("ET_USERNAME", "alice")
	t.Setenv("ET_API_KEY", "")
	os.Unsetenv("ET_API_KEY")

	s, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := s.Credentials()
	if len(got) != 1 || got["ET_USERNAME"] != "alice" {
		t.Fatalf("Credentials = %v", got)
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("CAWEB_RELEASE_TIMEOUT", "soon")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestWorkDirectory(t *testing.T) {
	t.Parallel()

	got := workDirectory("/home/dev/.wp-env", "/projects/site/.wp-env.json")
	if filepath.Dir(got) != "/home/dev/.wp-env" {
		t.Fatalf("work directory %s is not under home", got)
	}
	if len(filepath.Base(got)) != 32 {
		t.Fatalf("expected md5 hex directory name, got %s", filepath.Base(got))
	}
	if got != workDirectory("/home/dev/.wp-env", "/projects/site/.wp-env.json") {
		t.Fatal("work directory must be stable")
	}
	if got == workDirectory("/home/dev/.wp-env", "/projects/other/.wp-env.json") {
		t.Fatal("different projects must not share a work directory")
	}
}
