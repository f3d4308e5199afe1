package sqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/velahq/vela/pkg/log"
)

const backupPrefix = "vela_backup_"

// Backups copies the store file into a sibling directory under a
// timestamped name and prunes old snapshots. A snapshot is a best-effort
// file copy; it is not guaranteed consistent with a concurrent write.
type Backups struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

func NewBackups(dbPath, dir string, keep int) *Backups {
	return &Backups{
		dbPath: dbPath,
		dir:    dir,
		keep:   keep,
		now:    time.Now,
	}
}

func (b *Backups) Snapshot(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s%s.db", backupPrefix, b.now().Format("20060102_150405"))
	dst := filepath.Join(b.dir, name)

	if err := copyFile(b.dbPath, dst); err != nil {
		return "", fmt.Errorf("failed to copy snapshot: %w", err)
	}

	if err := b.prune(); err != nil {
		return "", fmt.Errorf("failed to prune snapshots: %w", err)
	}

	log.FromCtx(ctx).Info().Str("snapshot", name).Msg("database backup created")
	return dst, nil
}

// prune keeps the newest snapshots. The timestamp is embedded in the
// file name, so lexical order is creation order.
func (b *Backups) prune() error {
	snapshots, err := filepath.Glob(filepath.Join(b.dir, backupPrefix+"*.db"))
	if err != nil {
		return err
	}

	sort.Strings(snapshots)
	if len(snapshots) <= b.keep {
		return nil
	}

	for _, old := range snapshots[:len(snapshots)-b.keep] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
