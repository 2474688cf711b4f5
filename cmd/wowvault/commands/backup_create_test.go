package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tdalbo/wowvault/internal/backup"
)

func TestRenderResult(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		var buf bytes.Buffer
		res := &backup.Result{
			Success:   true,
			Copied:    []string{"a.lua", "b.lua"},
			TotalSize: 2048,
			BackupDir: "/backups/Backup/raid",
			StartTime: time.Now(),
			EndTime:   time.Now(),
		}

		renderResult(&buf, res)

		out := buf.String()
		if !strings.Contains(out, "Backup complete") {
			t.Errorf("expected success banner, got:\n%s", out)
		}
		if !strings.Contains(out, "copied:   2 (2.0 KB)") {
			t.Errorf("expected copy count and size, got:\n%s", out)
		}
		if strings.Contains(out, "Failed files") {
			t.Errorf("did not expect failure section, got:\n%s", out)
		}
	})

	t.Run("failures are capped", func(t *testing.T) {
		var buf bytes.Buffer
		res := &backup.Result{
			BackupDir: "/backups/Backup/raid",
		}
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			res.Failed = append(res.Failed, backup.FileError{
				Path:   name + ".lua",
				Reason: "source file not found",
			})
		}

		renderResult(&buf, res)

		out := buf.String()
		if !strings.Contains(out, "Backup completed with errors") {
			t.Errorf("expected error banner, got:\n%s", out)
		}
		if !strings.Contains(out, "e.lua") {
			t.Errorf("expected first five failures listed, got:\n%s", out)
		}
		if strings.Contains(out, "f.lua") {
			t.Errorf("expected sixth failure to be collapsed, got:\n%s", out)
		}
		if !strings.Contains(out, "+2 more") {
			t.Errorf("expected collapsed count, got:\n%s", out)
		}
	})

	t.Run("validation errors are rendered", func(t *testing.T) {
		var buf bytes.Buffer
		res := &backup.Result{
			BackupDir: "/backups/Backup/raid",
			ValidationErrors: []backup.ValidationError{
				{Source: "a.lua", Dest: "/backups/a.lua", Reason: "integrity check failed"},
			},
		}

		renderResult(&buf, res)

		out := buf.String()
		if !strings.Contains(out, "Validation errors") {
			t.Errorf("expected validation section, got:\n%s", out)
		}
		if !strings.Contains(out, "integrity check failed") {
			t.Errorf("expected reason in output, got:\n%s", out)
		}
	})
}
