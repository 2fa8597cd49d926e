package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
)

// ScriptVersion is the only script version understood.
const ScriptVersion = "1"

// Script is a batch of refactoring commands.
type Script struct {
	Version string `yaml:"version"`
	// Document is the document the steps create elements in, relative to
	// the script file. Empty means the document given on the command line.
	Document string `yaml:"document,omitempty"`
	Steps    []Step `yaml:"steps"`

	path string
}

// Step is one refactoring invocation. Args may be written as a single
// scalar when there is one parameter.
type Step struct {
	Command string
	Args    []string
	// Line is the script line the step starts on, 0 when built in code.
	Line int
}

func (s Step) String() string {
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a step is a mapping with command and args", node.Line)
	}

	*s = Step{Args: []string{}, Line: node.Line}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		switch key.Value {
		case "command":
			if err := value.Decode(&s.Command); err != nil {
				return err
			}

			s.Command = strings.TrimSpace(s.Command)
		case "args":
			args, err := stepArgs(value)
			if err != nil {
				return err
			}

			s.Args = args
		default:
			return fmt.Errorf("line %d: unknown step field %q", key.Line, key.Value)
		}
	}

	return nil
}

// stepArgs reads a scalar or a sequence of scalars.
func stepArgs(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return []string{}, nil
		}

		return []string{node.Value}, nil
	case yaml.SequenceNode:
		args := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: args: expected string or array of strings", item.Line)
			}

			args = append(args, item.Value)
		}

		return args, nil
	default:
		return nil, fmt.Errorf("line %d: args: expected string or array of strings", node.Line)
	}
}

// MarshalYAML writes a single parameter as a scalar and drops empty args.
func (s Step) MarshalYAML() (any, error) {
	out := struct {
		Command string `yaml:"command"`
		Args    any    `yaml:"args,omitempty"`
	}{Command: s.Command}

	switch len(s.Args) {
	case 0:
	case 1:
		out.Args = s.Args[0]
	default:
		out.Args = s.Args
	}

	return out, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.path = path

	return s, nil
}

// ParseScript parses YAML script data.
func ParseScript(data []byte) (*Script, error) {
	var s Script

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	if s.Version == "" {
		s.Version = ScriptVersion
	}

	return &s, nil
}

// MarshalScript serializes a script to YAML.
func MarshalScript(s *Script) ([]byte, error) {
	return yaml.Marshal(s)
}

// ValidateScript checks the version and that every step names one of
// the known commands. Step diagnostics point at the step's line.
func ValidateScript(s *Script, commands []string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if s.Version != ScriptVersion {
		res.Errorf(diagnostic.In(s.path), "version", "unsupported_version", "unsupported script version %q", s.Version)
	}

	if len(s.Steps) == 0 {
		res.Warnf(diagnostic.In(s.path), "steps", "empty_script", "script has no steps")
	}

	known := make(map[string]bool, len(commands))
	for _, c := range commands {
		known[c] = true
	}

	for i, step := range s.Steps {
		where := fmt.Sprintf("steps[%d]", i)
		at := diagnostic.At(s.path, step.Line, 0)

		switch {
		case step.Command == "":
			res.Errorf(at, where, "missing_command", "step has no command")
		case !known[step.Command]:
			res.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        "unknown_command",
				Message:     fmt.Sprintf("unknown command %q", step.Command),
				At:          at,
				Element:     where,
				Suggestions: match.Suggest(step.Command, commands, match.DefaultMaxSuggestions),
			})
		}
	}

	return res
}
