package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	LogoAsset      = "logo.png"
	SignatureAsset = "signature.png"
	FooterAsset    = "bas_de_page.png"
)

var ErrAssetMissing = errors.New("asset missing")

// Assets resolves the static images placed in documents.
type Assets interface {
	Load(name string) ([]byte, error)
}

type FSAssets struct {
	FS fs.FS
}

func NewDirAssets(dir string) FSAssets {
	return FSAssets{FS: os.DirFS(dir)}
}

func (a FSAssets) Load(name string) ([]byte, error) {
	if a.FS == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrAssetMissing)
	}
	b, err := fs.ReadFile(a.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrAssetMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%s: empty file: %w", name, ErrAssetMissing)
	}
	return b, nil
}
