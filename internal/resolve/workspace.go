package resolve

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Extension is the file extension of CML documents.
const Extension = ".cml"

// Documents returns the URIs of all CML documents below root, sorted.
func (l *Loader) Documents(ctx context.Context, root string) ([]string, error) {
	var found []string

	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !strings.HasPrefix(info.Name(), "."), nil
		}

		if strings.HasSuffix(info.Name(), Extension) {
			found = append(found, CanonicalURI(url.Join(baseURL, parent, info.Name())))
		}

		return true, nil
	}

	if err := l.fs.Walk(ctx, CanonicalURI(root), visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(found)

	return found, nil
}
