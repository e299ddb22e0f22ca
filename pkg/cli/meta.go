package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/chromakey/pkg/stdimg"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeBool  ParamType = "bool"
	ParamTypePath  ParamType = "path"
	ParamTypeKey   ParamType = "key"
)

// ValidationRule is a machine-friendly representation of the constraints
// applied to one positional argument before a command runs.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Example  string    `json:"example,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false" string.
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// GenerateTooltipFromStdSpec produces a tooltip string from a stdimg.CommandSpec.
func GenerateTooltipFromStdSpec(c stdimg.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString("\nparameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRulesFromStdSpec creates ValidationRule entries from a stdimg.CommandSpec.
func GenerateValidationRulesFromStdSpec(c stdimg.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "int":
			t = ParamTypeInt
		case "float":
			t = ParamTypeFloat
		case "bool":
			t = ParamTypeBool
		case "key":
			t = ParamTypeKey
		default:
			t = ParamTypePath
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		if a.Name == "scaleFactor" {
			zero := 0.0
			r.Min = &zero
		}
		rules[a.Name] = r
	}
	return rules
}

// StdMetaStore indexes stdimg.CommandSpec entries by name.
type StdMetaStore struct {
	Commands []stdimg.CommandSpec
	byName   map[string]stdimg.CommandSpec
}

// NewMetaStoreFromStdimg creates a StdMetaStore from stdimg.CommandSpec list.
func NewMetaStoreFromStdimg(cmds []stdimg.CommandSpec) *StdMetaStore {
	m := &StdMetaStore{Commands: cmds, byName: make(map[string]stdimg.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// GetTooltip returns tooltip string for a stdimg command.
func (m *StdMetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltipFromStdSpec(c), nil
}

// NormalizeArgsFromStd checks args against the command's declared types and
// returns them keyed by parameter name in canonical form: integers and floats
// reformatted, booleans as "true"/"false", keys as "blue"/"green"/"auto".
// Every failure is a *UsageError.
func NormalizeArgsFromStd(store *StdMetaStore, cmdName string, args []string) (map[string]string, error) {
	if store == nil {
		return nil, usageErrorf(cmdName, "metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, usageErrorf("", "unknown command: %s", cmdName)
	}
	if len(args) > len(c.Args) {
		return nil, usageErrorf(cmdName, "expected %d arguments, got %d (usage: %s)", len(c.Args), len(args), c.Usage)
	}
	rules := GenerateValidationRulesFromStdSpec(c)
	out := make(map[string]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, usageErrorf(cmdName, "missing required parameter: %s (usage: %s)", a.Name, c.Usage)
			}
			out[a.Name] = a.Default
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 0)
			if err != nil {
				return nil, usageErrorf(cmdName, "parameter %s: expected integer, got %q", a.Name, raw)
			}
			if vr.Min != nil && float64(v) < *vr.Min {
				return nil, usageErrorf(cmdName, "parameter %s: %d < min %v", a.Name, v, *vr.Min)
			}
			out[a.Name] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, usageErrorf(cmdName, "parameter %s: expected float, got %q", a.Name, raw)
			}
			if vr.Min != nil && f <= *vr.Min {
				return nil, usageErrorf(cmdName, "parameter %s: %v must be greater than %v", a.Name, f, *vr.Min)
			}
			out[a.Name] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypeBool:
			bs, err := parseBoolLikeToString(raw)
			if err != nil {
				return nil, usageErrorf(cmdName, "parameter %s: %v", a.Name, err)
			}
			out[a.Name] = bs
		case ParamTypeKey:
			k, err := stdimg.ParseKey(raw)
			if err != nil {
				return nil, &UsageError{Command: cmdName, Err: fmt.Errorf("parameter %s: %w", a.Name, err)}
			}
			out[a.Name] = k.String()
		case ParamTypePath:
			out[a.Name] = raw
		default:
			return nil, usageErrorf(cmdName, "parameter %s: unsupported param type %q", a.Name, vr.Type)
		}
	}
	return out, nil
}
