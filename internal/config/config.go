package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuración de la aplicación
type AppConfig struct {
	Data     DataConfig     `toml:"data"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// DataConfig configuración de datos
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	AutoBackup bool   `toml:"auto_backup"`
}

// PipelineConfig configuración del pipeline de extracción
type PipelineConfig struct {
	RecordCatalog bool `toml:"record_catalog"`
}

// DefaultConfig configuración por defecto
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			DataDir:    "data",
			AutoBackup: true,
		},
		Pipeline: PipelineConfig{
			RecordCatalog: true,
		},
	}
}

// GetExeDir directorio del ejecutable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig carga la configuración desde config.toml.
// El archivo vive junto al ejecutable; si no existe se usan los
// valores por defecto.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// sin directorio de ejecutable, usar el directorio actual
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides variables de entorno para corridas locales y E2E
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("TAURO_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
}

// SaveConfig guarda la configuración en config.toml junto al ejecutable
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir asegura el directorio de datos y sus subdirectorios.
// Un DataDir absoluto se respeta tal cual; uno relativo se resuelve
// contra el directorio del ejecutable.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "output", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath ruta de un archivo dentro del directorio de datos
func GetDataPath(config *AppConfig, subdir, filename string) string {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, _ := GetExeDir()
		if exeDir == "" {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}
	return filepath.Join(dataDir, subdir, filename)
}
