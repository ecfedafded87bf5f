package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/oy3o/flow/layout"
	"gopkg.in/yaml.v3"
)

// writeFields prints decoded fields as yaml (default), json or text.
func writeFields(w io.Writer, format string, fields []layout.Field) error {
	out := make([]layout.Field, len(fields))
	for i, f := range fields {
		out[i] = f
		// raw bytes read better as hex than as a list of numbers
		if b, ok := f.Value.([]byte); ok {
			out[i].Value = hex.EncodeToString(b)
		}
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text", "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tKIND\tVALUE")
		for i, f := range out {
			fmt.Fprintf(tw, "%d\t%s\t%v\n", i, f.Kind, f.Value)
		}
		return tw.Flush()
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
}
