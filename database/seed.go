package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Forms []model.Form `yaml:"forms"`
}

// SeedFile imports the forms listed in a YAML file, but only into a
// database that holds no forms yet. It returns the number of forms added.
func SeedFile(ctx context.Context, db *sql.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed.read: %w", err)
	}

	var seed seedFile
	err = yaml.Unmarshal(data, &seed)
	if err != nil {
		return 0, fmt.Errorf("seed.parse: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed.begin_tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM form`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("seed.count: %w", err)
	}
	if count > 0 {
		log.Debugf("seed: %d forms already present, skipping %s", count, path)
		return 0, nil
	}

	for _, f := range seed.Forms {
		_, err = InsertForm(ctx, tx, f)
		if err != nil {
			return 0, fmt.Errorf("seed.insert %q: %w", f.Title, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("seed.commit: %w", err)
	}
	return len(seed.Forms), nil
}
