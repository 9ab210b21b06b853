package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	csvPath    string
	dbPath     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		csvPath:    filepath.Join(base, "scans.csv"),
		dbPath:     filepath.Join(base, "contacts.db"),
	}

	content := fmt.Sprintf(`[paths]
scan_csv = %q
contacts_db = %q
log_dir = %q

[watcher]
poll_interval_ms = 200

[search]
page_size = 25

[logging]
format = "console"
level = "error"
`, env.csvPath, env.dbPath, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeScans(t *testing.T, rows ...string) {
	t.Helper()
	lines := append([]string{
		"CREATED,FIRST NAME,LAST NAME,FULL NAME,DOB,AGE,ID NO,EXPIRES,ISSUED,PHOTO",
	}, rows...)
	if err := os.WriteFile(e.csvPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write scans: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", env.configPath))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.csvPath)
	requireContains(t, out, "Poll interval:  200ms")
}

func TestContactsAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "contacts", "add", "--first", "BRANDON", "--last", "smith", "--dob", "01-15-1990")
	if err != nil {
		t.Fatalf("contacts add: %v", err)
	}
	requireContains(t, out, "Added Brandon Smith")

	out, err = runCLI(t, env, "contacts", "list")
	if err != nil {
		t.Fatalf("contacts list: %v", err)
	}
	requireContains(t, out, "Brandon")
	requireContains(t, out, "Smith")
	requireContains(t, out, "1990-01-15")
}

func TestContactsImport(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "import.csv")
	content := "first_name,last_name,date_of_birth\n" +
		"BRANDON,SMITH,01-15-1990\n" +
		"dana,brown,1985-02-20\n" +
		",,\n"
	if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
		t.Fatalf("write import csv: %v", err)
	}

	out, err := runCLI(t, env, "contacts", "import", source)
	if err != nil {
		t.Fatalf("contacts import: %v", err)
	}
	requireContains(t, out, "Imported 2 contacts")

	out, err = runCLI(t, env, "contacts", "list")
	if err != nil {
		t.Fatalf("contacts list: %v", err)
	}
	requireContains(t, out, "Brandon")
	requireContains(t, out, "1990-01-15")
	requireContains(t, out, "Brown")
}

func TestMatchCommandWithFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "contacts", "add", "--first", "Brandon", "--last", "Smith", "--dob", "1990-01-15"); err != nil {
		t.Fatalf("contacts add: %v", err)
	}

	out, err := runCLI(t, env, "match", "--first", "BRANDON", "--last", "SMITH", "--dob", "01-15-1990")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "100")
	requireContains(t, out, "Brandon")
}

func TestMatchCommandUsesLatestScan(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeScans(t,
		"2024/05/02 09:00:00 (Thu May 02),DANA,BROWN,DANA BROWN,02-20-1985,39,B200,2030-01-01,2020-01-01,",
		"2024/05/03 10:30:00 (Fri May 03),BRANDON,SMITH,BRANDON SMITH,01-15-1990,34,A100,2030-01-01,2020-01-01,",
	)
	if _, err := runCLI(t, env, "contacts", "add", "--first", "Brandon", "--last", "Smith", "--dob", "1990-01-15"); err != nil {
		t.Fatalf("contacts add: %v", err)
	}

	out, err := runCLI(t, env, "match")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "First name:  BRANDON")
	requireContains(t, out, "100")
}

func TestLatestCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeScans(t,
		"2024/05/02 09:00:00 (Thu May 02),DANA,BROWN,DANA BROWN,02-20-1985,39,B200,2030-01-01,2020-01-01,",
		"2024/05/03 10:30:00 (Fri May 03),BRANDON,SMITH,BRANDON SMITH,01-15-1990,34,A100,2030-01-01,2020-01-01,",
	)

	out, err := runCLI(t, env, "latest")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	requireContains(t, out, "BRANDON")
	requireContains(t, out, "2024-05-03 10:30:00")
}

func TestSortCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeScans(t,
		"2024/05/02 09:00:00 (Thu May 02),DANA,BROWN,DANA BROWN,02-20-1985,39,B200,2030-01-01,2020-01-01,",
		"2024/05/03 10:30:00 (Fri May 03),BRANDON,SMITH,BRANDON SMITH,01-15-1990,34,A100,2030-01-01,2020-01-01,",
	)

	target := filepath.Join(env.baseDir, "sorted.csv")
	out, err := runCLI(t, env, "sort", "--output", target)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	requireContains(t, out, "Wrote 2 records")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sorted copy: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("sorted copy has %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "BRANDON") {
		t.Fatalf("newest record should come first, got %q", lines[1])
	}
}
