package registry

import (
	"embed"
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/scorecard/internal/model"
)

//go:embed content/*.yaml
var embedded embed.FS

// contentFile is the on-disk shape of a content file.
type contentFile struct {
	Subcomponents []model.Subcomponent `json:"subcomponents" yaml:"subcomponents"`
}

// LoadEmbedded builds a registry from the content shipped in the binary.
func LoadEmbedded() (*Registry, error) {
	subs, err := loadFS(embedded, "content")
	if err != nil {
		return nil, eris.Wrap(err, "registry: load embedded content")
	}
	return New(subs...), nil
}

// LoadFile reads a YAML or JSON content file, chosen by extension.
func LoadFile(p string) (*Registry, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read content file")
	}
	subs, err := decode(p, data)
	if err != nil {
		return nil, err
	}
	return New(subs...), nil
}

// LoadDir reads every .yaml, .yml, and .json file in dir in name order.
func LoadDir(dir string) (*Registry, error) {
	subs, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, eris.Wrapf(err, "registry: load content dir %s", dir)
	}
	return New(subs...), nil
}

// Load picks a loader by path: directories use LoadDir, files LoadFile.
func Load(p string) (*Registry, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, eris.Wrap(err, "registry: stat content path")
	}
	if info.IsDir() {
		return LoadDir(p)
	}
	return LoadFile(p)
}

func loadFS(fsys fs.FS, dir string) ([]model.Subcomponent, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read dir")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var all []model.Subcomponent
	for _, e := range entries {
		if e.IsDir() || !isContentFile(e.Name()) {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, eris.Wrapf(err, "registry: read %s", name)
		}
		subs, err := decode(name, data)
		if err != nil {
			return nil, err
		}
		all = append(all, subs...)
	}
	return all, nil
}

func decode(name string, data []byte) ([]model.Subcomponent, error) {
	var f contentFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrapf(err, "registry: unmarshal %s", name)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrapf(err, "registry: unmarshal %s", name)
		}
	default:
		return nil, eris.Errorf("registry: unsupported content file %s", name)
	}
	return f.Subcomponents, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
