package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/supplylens/supplylens/pkg/types"
)

// LoadFile reads a JSON dataset of the form
// {"shipments": [...], "suppliers": [...], "inventory": [...]}.
func LoadFile(path string) (*types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var ds types.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return &ds, nil
}

// WriteFile writes ds as indented JSON.
func WriteFile(path string, ds *types.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}

// IsSQL reports whether source names a database rather than a JSON file.
func IsSQL(source string) bool {
	for _, p := range []string{"sqlite://", "mysql://", "mariadb://"} {
		if strings.HasPrefix(source, p) {
			return true
		}
	}
	return strings.HasSuffix(source, ".db") || strings.HasSuffix(source, ".sqlite")
}

// Load reads the dataset named by source: a database DSN (see Open) or a
// path to a JSON file. With strict set the result must also pass Validate.
func Load(ctx context.Context, source string, strict bool) (*types.Dataset, error) {
	var (
		ds  *types.Dataset
		err error
	)
	if IsSQL(source) {
		ds, err = loadFromDSN(ctx, source)
	} else {
		ds, err = LoadFile(source)
	}
	if err != nil {
		return nil, err
	}
	if strict {
		if err := Validate(ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func loadFromDSN(ctx context.Context, dsn string) (*types.Dataset, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadSQL(ctx, db)
}
