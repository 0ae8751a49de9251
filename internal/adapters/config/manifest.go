// Package config provides the manifest store and settings loader for proper.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/proper/internal/core/domain"
	"go.trai.ch/zerr"
)

// JSONManifestStore implements ports.ManifestStore for elm-package.json files.
// Field order and fields it does not understand survive a rewrite.
// Declarations are returned without a Source; callers resolve it against
// their configured git host.
type JSONManifestStore struct{}

// NewManifestStore creates a manifest store.
func NewManifestStore() *JSONManifestStore {
	return &JSONManifestStore{}
}

// Load reads the manifest at path.
func (s *JSONManifestStore) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoManifest, "manifest missing"), "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParse, err.Error()), "path", path)
	}

	m, err := s.Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	m.Path = path
	return m, nil
}

// Parse decodes a manifest document.
func (*JSONManifestStore) Parse(data []byte) (*domain.Manifest, error) {
	doc, err := decodeObject(data)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrManifestParse, err.Error())
	}

	m := &domain.Manifest{Raw: data}

	if raw, ok := doc.values[toolVersionKey]; ok {
		if err := json.Unmarshal(raw, &m.ToolVersion); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestParse, "elm-version must be a string"), "field", toolVersionKey)
		}
	}

	raw, ok := doc.values[dependenciesKey]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return m, nil
	}
	deps, err := decodeObject(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParse, err.Error()), "field", dependenciesKey)
	}
	for _, name := range deps.keys {
		if err := domain.ValidatePackageName(name); err != nil {
			return nil, zerr.With(err, "field", dependenciesKey)
		}
		var rng *string
		if err := json.Unmarshal(deps.values[name], &rng); err != nil {
			err = zerr.Wrap(domain.ErrManifestParse, "dependency range must be a string or null")
			return nil, zerr.With(err, "package", name)
		}
		decl := domain.DependencyDeclaration{Name: name}
		if rng != nil {
			decl.Range = *rng
		}
		m.Dependencies = append(m.Dependencies, decl)
	}
	return m, nil
}

// Encode renders the manifest with its current dependencies, keeping every
// other field of the original document in place.
func (*JSONManifestStore) Encode(m *domain.Manifest) ([]byte, error) {
	doc := &object{values: make(map[string]json.RawMessage)}
	if len(bytes.TrimSpace(m.Raw)) > 0 {
		parsed, err := decodeObject(m.Raw)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrManifestEncode, err.Error())
		}
		doc = parsed
	}

	deps := &object{values: make(map[string]json.RawMessage, len(m.Dependencies))}
	for _, d := range m.Dependencies {
		value := json.RawMessage("null")
		if !d.IsUnconstrained() {
			encoded, err := marshalString(d.Range)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrManifestEncode, err.Error()), "package", d.Name)
			}
			value = encoded
		}
		deps.set(d.Name, value)
	}
	depsRaw, err := deps.marshal()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrManifestEncode, err.Error())
	}
	doc.set(dependenciesKey, depsRaw)

	compact, err := doc.marshal()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrManifestEncode, err.Error())
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", manifestIndent); err != nil {
		return nil, zerr.Wrap(domain.ErrManifestEncode, err.Error())
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// object is a JSON object that remembers the order of its keys.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *object) set(key string, value json.RawMessage) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, o.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s without escaping <, > and &, which range
// expressions are made of.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var errNotObject = zerr.New("expected a JSON object")

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	o := &object{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		o.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, zerr.New("unexpected data after manifest object")
	}
	return o, nil
}
