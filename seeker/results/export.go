package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/common"
	"github.com/ZanzyTHEbar/file-seeker/seeker/filesystem/types"

	"gopkg.in/yaml.v3"
)

// Format is an encoding for exported result collections.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps user input to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", common.NewConfigError("format", fmt.Errorf("%w: %q", common.ErrUnknownFormat, s))
	}
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Export writes records as an ordered list of {path, name, size, time, hash}.
func Export(w io.Writer, records []types.FileRecord, format Format) error {
	data, err := encode(records, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportFile writes records to path atomically while holding path's lock file.
func ExportFile(path string, records []types.FileRecord, format Format) error {
	data, err := encode(records, format)
	if err != nil {
		return err
	}
	if err := common.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to export results to %s: %w", path, err)
	}
	return nil
}

func encode(records []types.FileRecord, format Format) ([]byte, error) {
	if records == nil {
		records = []types.FileRecord{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode results: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("failed to encode results: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode results: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, common.NewConfigError("format", fmt.Errorf("%w: %q", common.ErrUnknownFormat, format))
	}
}

// Import parses a document produced by Export. Anything that is not exactly a
// list of records (unknown fields, wrong types, trailing data, records without
// a path) fails as a whole with a SerializationError.
func Import(r io.Reader, format Format) ([]types.FileRecord, error) {
	var (
		records []types.FileRecord
		err     error
	)

	switch format {
	case FormatJSON:
		records, err = decodeJSON(r)
	case FormatYAML:
		records, err = decodeYAML(r)
	default:
		return nil, common.NewConfigError("format", fmt.Errorf("%w: %q", common.ErrUnknownFormat, format))
	}
	if err != nil {
		return nil, &common.SerializationError{Format: string(format), Err: err}
	}

	for i, rec := range records {
		if rec.Path == "" {
			return nil, &common.SerializationError{Format: string(format), Err: fmt.Errorf("record %d: missing path", i)}
		}
	}
	return records, nil
}

// ImportFile reads path using the format implied by its extension.
func ImportFile(path string) ([]types.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	return Import(f, FormatFromPath(path))
}

func decodeJSON(r io.Reader) ([]types.FileRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("document is not a list of records")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var records []types.FileRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, common.ErrTrailingData
	}
	return records, nil
}

func decodeYAML(r io.Reader) ([]types.FileRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var records []types.FileRecord
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, common.ErrTrailingData
	}
	return records, nil
}
