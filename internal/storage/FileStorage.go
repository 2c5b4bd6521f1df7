package storage

import (
	"dropxhub/internal/providers"
	"dropxhub/internal/storage/interfaces"
	"dropxhub/internal/structures"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const fileFormatVersion = 1

// fileEnvelope is the on-disk layout of the whole key space.
type fileEnvelope struct {
	Version int               `json:"version"`
	Keys    map[string]string `json:"keys"`
}

// FileStorage keeps every key in memory and rewrites the backing file
// synchronously on each mutation.
type FileStorage struct {
	mu         sync.RWMutex
	fileName   string
	data       map[string]string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStorage(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.KeyValueStorage, error) {
	fs := &FileStorage{
		fileName:   conf.Storage.FilePath,
		data:       make(map[string]string),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
	if err := os.MkdirAll(filepath.Dir(fs.fileName), 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	err := fs.load()
	if errors.Is(err, ErrCorruptStorage) {
		err = fs.quarantine(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load storage %s: %w", fs.fileName, err)
	}
	return fs, nil
}

// quarantine moves an unreadable file aside so the services start from
// their defaults. The original bytes stay in <file>.corrupt.
func (f *FileStorage) quarantine(cause error) error {
	f.logger.Errorf(providers.TypeApp, "Restore error: %s", cause)
	aside := f.fileName + ".corrupt"
	if err := os.Rename(f.fileName, aside); err != nil {
		return fmt.Errorf("move corrupt storage aside: %w", err)
	}
	f.logger.Warnf(providers.TypeApp, "Corrupt storage moved to %s, starting empty", aside)
	f.data = make(map[string]string)
	return nil
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	val, ok := f.data[key]
	return val, ok, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.data)+1)
	for k, v := range f.data {
		next[k] = v
	}
	next[key] = value

	if err := f.save(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *FileStorage) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.data[key]; !ok {
		return nil
	}
	next := make(map[string]string, len(f.data))
	for k, v := range f.data {
		if k != key {
			next[k] = v
		}
	}

	if err := f.save(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *FileStorage) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *FileStorage) Close() {
	f.compressor.Close()
}

func (f *FileStorage) save(data map[string]string) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	jsonData, err := json.Marshal(fileEnvelope{Version: fileFormatVersion, Keys: data})
	if err != nil {
		return err
	}
	payload, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(payload)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.fileName)
}

func (f *FileStorage) load() error {
	raw, err := os.ReadFile(f.fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeApp, "Storage file %s not found, starting empty", f.fileName)
			return nil
		}
		return err
	}

	data, err := f.compressor.Decompress(raw)
	if err != nil {
		return errors.Join(ErrCorruptStorage, err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Version > 0 {
		if envelope.Version > fileFormatVersion {
			return fmt.Errorf("unsupported storage format version %d", envelope.Version)
		}
		if envelope.Keys != nil {
			f.data = envelope.Keys
		}
		return nil
	}

	// A flat object is a raw key/value dump, e.g. exported browser storage.
	f.logger.Warnf(providers.TypeApp, "Storage envelope missing, trying flat key/value format")
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		f.logger.Warnf(providers.TypeApp, "Storage migration failed")
		return errors.Join(ErrCorruptStorage, err)
	}
	f.logger.Warnf(providers.TypeApp, "Migration from flat format successful")
	f.data = flat
	return nil
}

var ErrCorruptStorage = errors.New("storage file is corrupt")
