package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Tado3/Star-Space/internal/config"
)

// Runner executes the actual backup steps: a compressed pg_dump of the
// database and a tar.gz archive of the media directory.
type Runner struct {
	connectionString string
	backupDir        string
	mediaDir         string
	pgDumpBin        string
	log              *slog.Logger
}

func NewRunner(connectionString string, cfg config.Backup, log *slog.Logger) *Runner {
	return &Runner{
		connectionString: connectionString,
		backupDir:        cfg.BackupDir,
		mediaDir:         cfg.MediaDir,
		pgDumpBin:        cfg.PgDumpBin,
		log:              log,
	}
}

func (r *Runner) stampedPath(prefix, ext string) string {
	stamp := time.Now().Format("2006-01-02_150405")
	return filepath.Join(r.backupDir, fmt.Sprintf("%s_%s.%s", prefix, stamp, ext))
}

// BackupDatabase runs pg_dump and gzips its output into the backup
// directory.
func (r *Runner) BackupDatabase(ctx context.Context) error {
	const op = "backup.BackupDatabase"

	if err := os.MkdirAll(r.backupDir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	outPath := r.stampedPath("db", "sql.gz")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()

	cmd := exec.CommandContext(ctx, r.pgDumpBin, "--dbname="+r.connectionString)
	cmd.Stdout = gz
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.log.Info("database dump written", slog.String("path", outPath))
	return nil
}

// BackupMedia archives the media directory into a tar.gz file. A
// missing media directory is not an error, just nothing to archive.
func (r *Runner) BackupMedia(ctx context.Context) error {
	const op = "backup.BackupMedia"

	if _, err := os.Stat(r.mediaDir); os.IsNotExist(err) {
		r.log.Info("media directory does not exist, skipping", slog.String("path", r.mediaDir))
		return nil
	}

	if err := os.MkdirAll(r.backupDir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	outPath := r.stampedPath("media", "tar.gz")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(r.mediaDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.mediaDir, path)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.log.Info("media archive written", slog.String("path", outPath))
	return nil
}
