package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Nombres de artefacto por etapa. El nombre de archivo final es
// "<base>_<etapa>.json" en el directorio de salida.
const (
	KindCellMap  = "cellmap"
	KindHeader   = "header"
	KindEvents   = "events"
	KindNotes    = "notes"
	KindAnalysis = "analysis"
)

// Store persiste los artefactos JSON de una corrida en disco.
// Toda escritura es atómica: archivo temporal y renombre, de modo que
// un lector externo nunca observa un artefacto a medio escribir.
type Store struct {
	dir string
}

// New crea el almacén sobre el directorio de salida dado
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir directorio de salida del almacén
func (s *Store) Dir() string {
	return s.dir
}

// Path ruta del artefacto de una etapa para un documento base
func (s *Store) Path(basename, kind string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", basename, kind))
}

// Write serializa v con sangría de dos espacios y lo escribe de forma
// atómica
func (s *Store) Write(basename, kind string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s artifact: %w", kind, err)
	}
	data = append(data, '\n')

	path := s.Path(basename, kind)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s artifact: %w", kind, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize %s artifact: %w", kind, err)
	}
	return nil
}

// Read deserializa un artefacto existente en out
func (s *Store) Read(basename, kind string, out any) error {
	data, err := os.ReadFile(s.Path(basename, kind))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Exists indica si el artefacto ya fue escrito
func (s *Store) Exists(basename, kind string) bool {
	_, err := os.Stat(s.Path(basename, kind))
	return err == nil
}

// ListBasenames documentos con al menos el artefacto de cellmap, que es
// la etapa que siempre se persiste primero
func (s *Store) ListBasenames() ([]string, error) {
	suffix := fmt.Sprintf("_%s.json", KindCellMap)
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+suffix))
	if err != nil {
		return nil, err
	}
	basenames := make([]string, 0, len(matches))
	for _, m := range matches {
		basenames = append(basenames, strings.TrimSuffix(filepath.Base(m), suffix))
	}
	sort.Strings(basenames)
	return basenames, nil
}

// Basename nombre base de un documento: nombre de archivo sin extensión
func Basename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
