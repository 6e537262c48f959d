// Package snapshot is a host front end for the synthesis engine. A host
// compiler serializes its syntax tree, together with the answers to the
// semantic questions the engine asks, into a snapshot document; this package
// turns that document back into a syntax.Tree and a Model.
//
// Snapshots may be encoded as YAML, JSON or MessagePack. A minimal YAML
// snapshot looks like this:
//
//    schema: 1.0.0
//    files:
//      - path: Models.cs
//        decls:
//          - namespace: Shop
//            decls:
//              - class: Prices
//                attributes: [[{name: ClassToList}]]
//                decls:
//                  - field: string
//                    modifiers: [public, const]
//                    vars:
//                      - name: A
//                        init: {text: '"x"', const: {kind: string, value: x}}
//
// An attribute without an "args" key has no argument list at all, which is
// different from "args: []".
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/jhump/annosynth/syntax"
)

// SchemaConstraint is the range of snapshot schema versions this package
// understands.
const SchemaConstraint = "^1.0"

var (
	// ErrUnsupportedFormat is returned for unknown snapshot encodings.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	// ErrSchemaVersion is returned when a snapshot's schema version is
	// missing or outside SchemaConstraint.
	ErrSchemaVersion = errors.New("unsupported snapshot schema version")
	// ErrMalformedDecl is returned for declarations that cannot be turned
	// into syntax nodes.
	ErrMalformedDecl = errors.New("malformed declaration")
)

var schemaConstraint = mustConstraint(SchemaConstraint)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Format is a snapshot encoding.
type Format int

const (
	YAML Format = iota
	JSON
	MessagePack
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case MessagePack:
		return "msgpack"
	default:
		return fmt.Sprintf("?%d?", int(f))
	}
}

// FormatFromPath determines the encoding of a snapshot from its file
// extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".msgpack", ".mpk":
		return MessagePack, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode reads a snapshot in the given format and returns its tree and model.
func Decode(r io.Reader, format Format) (*syntax.Tree, *Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return DecodeBytes(data, format)
}

// DecodeBytes is like Decode, but for a snapshot that is already in memory.
func DecodeBytes(data []byte, format Format) (*syntax.Tree, *Model, error) {
	doc, err := unmarshal(data, format)
	if err != nil {
		return nil, nil, err
	}
	return doc.build()
}

// DecodeFile reads the snapshot at the given path in fs, choosing the format
// from the path's extension.
func DecodeFile(fs billy.Filesystem, path string) (*syntax.Tree, *Model, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, nil, err
	}
	tree, model, err := DecodeBytes(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, model, nil
}

// Transcode re-encodes a snapshot from one format into another. The
// snapshot's schema version is checked but its declarations are not.
func Transcode(data []byte, from, to Format) ([]byte, error) {
	doc, err := unmarshal(data, from)
	if err != nil {
		return nil, err
	}
	switch to {
	case YAML:
		return yaml.Marshal(doc)
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case MessagePack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, to)
	}
}

func unmarshal(data []byte, format Format) (*document, error) {
	var doc document
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("could not parse yaml snapshot: %w", err)
		}
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("could not parse json snapshot: %w", err)
		}
	case MessagePack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("could not parse msgpack snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err := checkSchema(doc.Schema); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("%w: missing schema", ErrSchemaVersion)
	}
	v, err := semver.NewVersion(schema)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSchemaVersion, schema, err)
	}
	if !schemaConstraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, v, SchemaConstraint)
	}
	return nil
}
