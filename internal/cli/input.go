package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/me/jsonsettings/pkg/jsonvalue"
)

// inputFlags are the non-interactive ways to supply setting data.
type inputFlags struct {
	data string
	file string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "Setting data as a JSON object")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read setting data from a JSON or YAML file (- for stdin)")
}

// read returns the editor buffer from --data or --file. ok is false when
// neither was given. YAML files are converted to JSON.
func (f *inputFlags) read(stdin io.Reader) (string, bool, error) {
	switch {
	case f.data != "" && f.file != "":
		return "", false, errors.New("--data and --file are mutually exclusive")
	case f.data != "":
		return f.data, true, nil
	case f.file == "":
		return "", false, nil
	}

	var raw []byte
	var err error
	if f.file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(f.file)
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", f.file, err)
	}

	switch strings.ToLower(filepath.Ext(f.file)) {
	case ".yaml", ".yml":
		v, err := yamlToValue(raw)
		if err != nil {
			return "", false, fmt.Errorf("parse %s: %w", f.file, err)
		}
		return v.Indent(), true, nil
	default:
		return string(raw), true, nil
	}
}

// yamlToValue converts a single YAML document to a JSON value, keeping
// mapping order.
func yamlToValue(data []byte) (jsonvalue.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return jsonvalue.Value{}, err
	}
	if doc.Kind == 0 {
		return jsonvalue.Null(), nil
	}
	return nodeToValue(&doc)
}

func nodeToValue(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonvalue.Null(), nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.SequenceNode:
		elems := make([]jsonvalue.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			elems = append(elems, v)
		}
		return jsonvalue.Array(elems...), nil
	case yaml.MappingNode:
		members := make([]jsonvalue.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return jsonvalue.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return jsonvalue.Value{}, err
			}
			members = append(members, jsonvalue.Member{Key: key.Value, Value: v})
		}
		return jsonvalue.Object(members...), nil
	case yaml.ScalarNode:
		return scalarToValue(n)
	}
	return jsonvalue.Value{}, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalarToValue(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonvalue.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.Bool(b), nil
	case "!!int", "!!float":
		// Decimal literals are already JSON numbers; keep them exact.
		if v, err := jsonvalue.Parse([]byte(n.Value)); err == nil && v.Kind() == jsonvalue.KindNumber {
			return v, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonvalue.Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return jsonvalue.Value{}, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		return jsonvalue.Number(json.Number(strconv.FormatFloat(f, 'g', -1, 64))), nil
	default:
		return jsonvalue.String(n.Value), nil
	}
}
