package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/zolo-lang/go/pkg/zolo"
)

// runConvert implements the convert subcommand. It parses .zolo files
// and prints their data mappings as YAML or JSON, preserving key order
// and resolved types.
func runConvert(args []string) error {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "", "write to a file instead of stdout")
	format := fs.StringP("format", "f", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "yaml" && *format != "json" {
		return fmt.Errorf("unknown format %q (want yaml or json)", *format)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("convert requires at least one file")
	}
	files, err := collectZoloFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .zolo files found")
	}
	if *output != "" && len(files) > 1 {
		return fmt.Errorf("--output only works with a single input file")
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		res := zolo.Tokenize(string(source), path)
		for _, d := range res.Diagnostics {
			if d.Severity == zolo.SeverityError {
				return fmt.Errorf("%s:%v", path, d)
			}
		}

		var data []byte
		switch *format {
		case "yaml":
			data, err = yaml.Marshal(yamlNode(res.Data))
		case "json":
			data, err = marshalJSON(res.Data)
		}
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// yamlNode converts a parsed node into a yaml.Node tree. Going through
// yaml.Node instead of plain maps keeps the document's key order.
func yamlNode(n zolo.Node) *yaml.Node {
	switch v := n.(type) {
	case *zolo.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.Keys {
			child, _ := v.Get(key)
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(child),
			)
		}
		return out
	case *zolo.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			out.Content = append(out.Content, yamlNode(item))
		}
		return out
	case *zolo.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Value, 10)}
	case *zolo.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Value, 'g', -1, 64)}
	case *zolo.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Value)}
	case *zolo.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case *zolo.String:
		return yamlString(v.Value)
	case *zolo.TypeError:
		// A failed coercion keeps its raw text; converted output keeps
		// it as a string.
		return yamlString(v.Raw)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// yamlString builds a string scalar, quoting values the YAML resolver
// would otherwise reinterpret as another type.
func yamlString(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	var probe any
	if err := yaml.Unmarshal([]byte(s), &probe); err == nil {
		if _, ok := probe.(string); !ok {
			n.Style = yaml.DoubleQuotedStyle
		}
	}
	return n
}

// marshalJSON renders a node as indented JSON, writing mapping keys in
// document order rather than the sorted order encoding/json gives maps.
func marshalJSON(n zolo.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n zolo.Node, indent string) error {
	switch v := n.(type) {
	case *zolo.Mapping:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		inner := indent + "  "
		for i, key := range v.Keys {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			k, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteString(": ")
			child, _ := v.Get(key)
			if err := writeJSON(buf, child, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "}")
		return nil
	case *zolo.Sequence:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := indent + "  "
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "]")
		return nil
	case *zolo.Integer:
		buf.WriteString(strconv.FormatInt(v.Value, 10))
		return nil
	case *zolo.Float:
		data, err := json.Marshal(v.Value)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case *zolo.Boolean:
		buf.WriteString(strconv.FormatBool(v.Value))
		return nil
	case *zolo.Null:
		buf.WriteString("null")
		return nil
	case *zolo.String:
		data, err := json.Marshal(v.Value)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case *zolo.TypeError:
		data, err := json.Marshal(v.Raw)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	default:
		buf.WriteString("null")
		return nil
	}
}
