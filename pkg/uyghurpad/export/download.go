package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxDuplicateNames bounds the " (n)" suffixes tried before giving up.
const maxDuplicateNames = 1000

// DirDownloader saves files into Dir without overwriting existing ones:
// a taken name gets a " (1)", " (2)", ... suffix before the extension.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; n < maxDuplicateNames; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(d.Dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", candidate, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, d.Dir)
}
