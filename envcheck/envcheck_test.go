package envcheck

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck_UnsetDataDirCreatesDefault(t *testing.T) {
	os.Clearenv()
	os.Setenv("DASHBOARD_SECRET_KEY", "test-secret")

	// Run from a temp working directory so the default dir lands there
	tmp := t.TempDir()
	oldWD, _ := os.Getwd()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWD)

	rep := Check("")

	want := filepath.Join(tmp, DefaultDataDirName)
	if rep.DataDir != want {
		t.Errorf("expected data dir %q, got %q", want, rep.DataDir)
	}

	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("default data dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("default data dir is not a directory")
	}

	vs := findVar(t, rep, "FACE_VIEWER_DATA_DIR")
	if vs.Status != StatusDefault {
		t.Errorf("expected status %q, got %q", StatusDefault, vs.Status)
	}
}

func TestCheck_ExistingWritableDataDir(t *testing.T) {
	os.Clearenv()
	os.Setenv("DASHBOARD_SECRET_KEY", "test-secret")

	tmp := t.TempDir()
	os.Setenv("FACE_VIEWER_DATA_DIR", tmp)

	// Drop a marker so we can verify the path is untouched
	marker := filepath.Join(tmp, "marker.txt")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rep := Check("")

	vs := findVar(t, rep, "FACE_VIEWER_DATA_DIR")
	if vs.Status != StatusOK {
		t.Errorf("expected status %q, got %q (detail: %s)", StatusOK, vs.Status, vs.Detail)
	}
	if rep.DataDir != tmp {
		t.Errorf("expected data dir %q, got %q", tmp, rep.DataDir)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("existing data dir contents were modified: %v", err)
	}
}

func TestCheck_ExplicitDirOverridesEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("DASHBOARD_SECRET_KEY", "test-secret")
	os.Setenv("FACE_VIEWER_DATA_DIR", "/nonexistent/should/not/be/used")

	tmp := t.TempDir()
	rep := Check(tmp)

	if rep.DataDir != tmp {
		t.Errorf("explicit dir should win: expected %q, got %q", tmp, rep.DataDir)
	}
}

func TestCheck_MissingSecretIsFatal(t *testing.T) {
	os.Clearenv()
	os.Setenv("FACE_VIEWER_DATA_DIR", t.TempDir())

	rep := Check("")

	vs := findVar(t, rep, "DASHBOARD_SECRET_KEY")
	if vs.Status != StatusMissing {
		t.Errorf("expected status %q, got %q", StatusMissing, vs.Status)
	}
	if !rep.Fatal() {
		t.Error("report with missing secret should be fatal")
	}
}

func TestCheck_SecretValueNeverEchoed(t *testing.T) {
	os.Clearenv()
	os.Setenv("DASHBOARD_SECRET_KEY", "super-secret-value")
	os.Setenv("FACE_VIEWER_DATA_DIR", t.TempDir())

	rep := Check("")

	vs := findVar(t, rep, "DASHBOARD_SECRET_KEY")
	if vs.Value == "super-secret-value" {
		t.Error("secret value must not be echoed in the report")
	}
}

func TestCheck_DataDirNotADirectory(t *testing.T) {
	os.Clearenv()
	os.Setenv("DASHBOARD_SECRET_KEY", "test-secret")

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("FACE_VIEWER_DATA_DIR", file)

	rep := Check("")

	vs := findVar(t, rep, "FACE_VIEWER_DATA_DIR")
	if vs.Status != StatusError {
		t.Errorf("expected status %q, got %q", StatusError, vs.Status)
	}
	if !rep.Fatal() {
		t.Error("report with bad data dir should be fatal")
	}
}

func findVar(t *testing.T, rep Report, name string) VarStatus {
	t.Helper()
	for _, v := range rep.Vars {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("variable %s not in report", name)
	return VarStatus{}
}
