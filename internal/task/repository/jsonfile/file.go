package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task/repository"
)

// read loads the whole collection. Callers must hold r.mu.
func (r *implRepository) read() ([]model.Task, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", repository.ErrPersistence, r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", repository.ErrPersistence, r.path, err)
	}

	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		t, err := toModel(i, rec, r.location)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", repository.ErrPersistence, r.path, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// write replaces the whole collection via a temp file and rename.
// Callers must hold r.mu.
func (r *implRepository) write(tasks []model.Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t, r.location))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%w: encode: %v", repository.ErrPersistence, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", repository.ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", repository.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write temp: %v", repository.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync temp: %v", repository.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", repository.ErrPersistence, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod temp: %v", repository.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", repository.ErrPersistence, r.path, err)
	}
	return nil
}
