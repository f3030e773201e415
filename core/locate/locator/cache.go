package locator

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/termfont/core"
)

var userCacheDir = os.UserCacheDir

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key (configuration key `app-key`).
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(appKey string, subfolders ...string) (string, error) {
	if appKey == "" {
		tracer().Errorf("application key is not set")
		return "", core.Error(core.EINVALID, "application key for cache directory is not set")
	}
	cachedir, err := userCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user cache directory not available")
	}
	cachedir = filepath.Join(append([]string{cachedir, appKey}, subfolders...)...)
	tracer().Infof("caching in %s", cachedir)
	if _, err = os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", core.WrapError(err, core.EINVALID, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
