package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Export writes reports to path. The encoding follows the extension:
// .json or .msgpack.
func Export(path string, reports []Report) (err error) {
	var encode func(f *os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		encode = func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
	case ".msgpack", ".mpk":
		encode = func(f *os.File) error {
			return msgpack.NewEncoder(f).Encode(reports)
		}
	default:
		return fmt.Errorf("%s: unsupported report format (want .json or .msgpack)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
