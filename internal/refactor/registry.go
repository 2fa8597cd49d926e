package refactor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Command describes a refactoring that can be invoked by name with ordered
// string parameters.
type Command struct {
	Name string
	// Params is the parameter synopsis, e.g. "<bc> [takeAttributesFromSecond]".
	Params  string
	Summary string
	// MinArgs and MaxArgs bound the number of parameters; MaxArgs < 0 means
	// no upper bound.
	MinArgs int
	MaxArgs int
	build   func(args []string) (Refactoring, error)
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a registry holding every built-in refactoring.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	for i := range builtins {
		r.Add(&builtins[i])
	}

	return r
}

// Add registers a command, replacing one of the same name.
func (r *Registry) Add(cmd *Command) {
	r.commands[cmd.Name] = cmd
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) *Command {
	return r.commands[name]
}

// Has reports whether a command with the given name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns the command names in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup builds the refactoring name with the given parameters.
func (r *Registry) Lookup(name string, args []string) (Refactoring, error) {
	cmd := r.Get(name)
	if cmd == nil {
		msg := fmt.Sprintf("unknown refactoring %q", name)
		if s := match.Suggest(name, r.Names(), match.DefaultMaxSuggestions); len(s) > 0 {
			msg += "; did you mean " + strings.Join(s, ", ") + "?"
		}

		return nil, fmt.Errorf("%s", msg)
	}

	if len(args) < cmd.MinArgs || (cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs) {
		return nil, fmt.Errorf("%s expects %s, got %d parameter(s)", cmd.Name, cmd.Params, len(args))
	}

	return cmd.build(args)
}

var defaultRegistry = NewRegistry()

// Lookup builds a built-in refactoring by name.
func Lookup(name string, args []string) (Refactoring, error) {
	return defaultRegistry.Lookup(name, args)
}

// Commands returns the built-in commands in alphabetical order.
func Commands() []*Command {
	out := make([]*Command, 0, len(builtins))
	for _, name := range defaultRegistry.Names() {
		out = append(out, defaultRegistry.Get(name))
	}

	return out
}

// optionalBool parses the optional boolean parameter at i.
func optionalBool(args []string, i int) (bool, error) {
	if len(args) <= i {
		return false, nil
	}

	b, err := strconv.ParseBool(args[i])
	if err != nil {
		return false, fmt.Errorf("parameter %d: %w", i+1, err)
	}

	return b, nil
}

func optional(args []string, i int) string {
	if len(args) <= i {
		return ""
	}

	return args[i]
}

var builtins = []Command{
	{
		Name: "SplitBoundedContextByOwner", Params: "<bc>", MinArgs: 1, MaxArgs: 1,
		Summary: "move the aggregates of each further owner into a new bounded context",
		build: func(a []string) (Refactoring, error) {
			return &SplitBoundedContextByOwner{BoundedContext: a[0]}, nil
		},
	},
	{
		Name: "SplitBoundedContextByFeatures", Params: "<bc>", MinArgs: 1, MaxArgs: 1,
		Summary: "move the aggregates of each further feature set into a new bounded context",
		build: func(a []string) (Refactoring, error) {
			return &SplitBoundedContextByFeatures{BoundedContext: a[0]}, nil
		},
	},
	{
		Name: "ExtractAggregatesByVolatility", Params: "<bc> <RARELY|NORMAL|OFTEN>", MinArgs: 2, MaxArgs: 2,
		Summary: "move aggregates with the given likelihood for change into a new bounded context",
		build: func(a []string) (Refactoring, error) {
			return &ExtractAggregatesByVolatility{BoundedContext: a[0], Volatility: model.Volatility(strings.ToUpper(a[1]))}, nil
		},
	},
	{
		Name: "ExtractAggregatesByCohesion", Params: "<bc> <newBC> <aggregate>...", MinArgs: 3, MaxArgs: -1,
		Summary: "move the named aggregates into a new bounded context",
		build: func(a []string) (Refactoring, error) {
			return &ExtractAggregatesByCohesion{BoundedContext: a[0], NewBoundedContext: a[1], Aggregates: a[2:]}, nil
		},
	},
	{
		Name: "MergeBoundedContexts", Params: "<bc1> <bc2> [takeAttributesFromSecond]", MinArgs: 2, MaxArgs: 3,
		Summary: "merge the second bounded context into the first",
		build: func(a []string) (Refactoring, error) {
			second, err := optionalBool(a, 2)
			if err != nil {
				return nil, err
			}

			return &MergeBoundedContexts{First: a[0], Second: a[1], TakeAttributesFromSecond: second}, nil
		},
	},
	{
		Name: "SplitAggregateByEntities", Params: "<aggregate>", MinArgs: 1, MaxArgs: 1,
		Summary: "give every further domain object of an aggregate its own aggregate",
		build: func(a []string) (Refactoring, error) {
			return &SplitAggregateByEntities{Aggregate: a[0]}, nil
		},
	},
	{
		Name: "MergeAggregates", Params: "<aggregate1> <aggregate2> [takeAttributesFromSecond]", MinArgs: 2, MaxArgs: 3,
		Summary: "merge the second aggregate into the first",
		build: func(a []string) (Refactoring, error) {
			second, err := optionalBool(a, 2)
			if err != nil {
				return nil, err
			}

			return &MergeAggregates{First: a[0], Second: a[1], TakeAttributesFromSecond: second}, nil
		},
	},
	{
		Name: "ExtractSharedKernel", Params: "<bc1> <bc2>", MinArgs: 2, MaxArgs: 2,
		Summary: "turn a shared kernel into a new upstream bounded context",
		build: func(a []string) (Refactoring, error) {
			return &ExtractSharedKernel{First: a[0], Second: a[1]}, nil
		},
	},
	{
		Name: "SuspendPartnership", Params: "<bc1> <bc2> <mode> [upstream]", MinArgs: 3, MaxArgs: 4,
		Summary: "end a partnership by merging, extracting a new context or going upstream-downstream",
		build: func(a []string) (Refactoring, error) {
			return &SuspendPartnership{First: a[0], Second: a[1], Mode: strings.ToUpper(a[2]), Upstream: optional(a, 3)}, nil
		},
	},
	{
		Name: "SwitchPartnershipToSharedKernel", Params: "<bc1> <bc2>", MinArgs: 2, MaxArgs: 2,
		Summary: "replace a partnership by a shared kernel",
		build: func(a []string) (Refactoring, error) {
			return &SwitchPartnershipToSharedKernel{First: a[0], Second: a[1]}, nil
		},
	},
	{
		Name: "SwitchSharedKernelToPartnership", Params: "<bc1> <bc2>", MinArgs: 2, MaxArgs: 2,
		Summary: "replace a shared kernel by a partnership",
		build: func(a []string) (Refactoring, error) {
			return &SwitchSharedKernelToPartnership{First: a[0], Second: a[1]}, nil
		},
	},
	{
		Name: "DeriveSubdomainFromUserRequirements", Params: "<domain> <subdomain> <requirement>...", MinArgs: 3, MaxArgs: -1,
		Summary: "create a subdomain supporting use cases and stories",
		build: func(a []string) (Refactoring, error) {
			return &DeriveSubdomainFromUserRequirements{Domain: a[0], Subdomain: a[1], Requirements: a[2:]}, nil
		},
	},
	{
		Name: "DeriveBoundedContextFromSubdomains", Params: "<bc> <subdomain>...", MinArgs: 2, MaxArgs: -1,
		Summary: "create a feature bounded context implementing subdomains",
		build: func(a []string) (Refactoring, error) {
			return &DeriveBoundedContextFromSubdomains{BoundedContext: a[0], Subdomains: a[1:]}, nil
		},
	},
	{
		Name: "SplitStoryByVerb", Params: "<story> <verb>...", MinArgs: 2, MaxArgs: -1,
		Summary: "create a story split by the given one with one feature per verb",
		build: func(a []string) (Refactoring, error) {
			return &SplitStoryByVerb{Story: a[0], Verbs: a[1:]}, nil
		},
	},
	{
		Name: "CreateStakeholderForUserStoryRole", Params: "<story>", MinArgs: 1, MaxArgs: 1,
		Summary: "add a stakeholder named after the role of a user story",
		build: func(a []string) (Refactoring, error) {
			return &CreateStakeholderForUserStoryRole{Story: a[0]}, nil
		},
	},
	{
		Name: "MoveStakeholderToNewStakeholderGroup", Params: "<stakeholder>", MinArgs: 1, MaxArgs: 1,
		Summary: "wrap a stakeholder into a new stakeholder group",
		build: func(a []string) (Refactoring, error) {
			return &MoveStakeholderToNewStakeholderGroup{Stakeholder: a[0]}, nil
		},
	},
	{
		Name: "CreateValue4Stakeholder", Params: "<stakeholder>", MinArgs: 1, MaxArgs: 1,
		Summary: "add a value elicited by a stakeholder",
		build: func(a []string) (Refactoring, error) {
			return &CreateValue4Stakeholder{Stakeholder: a[0]}, nil
		},
	},
	{
		Name: "WrapValueInCluster", Params: "<value>", MinArgs: 1, MaxArgs: 1,
		Summary: "move a value into a new value cluster",
		build: func(a []string) (Refactoring, error) {
			return &WrapValueInCluster{Value: a[0]}, nil
		},
	},
	{
		Name: "CreateValueRegisterForBoundedContext", Params: "<bc>", MinArgs: 1, MaxArgs: 1,
		Summary: "add a value register for a bounded context",
		build: func(a []string) (Refactoring, error) {
			return &CreateValueRegisterForBoundedContext{BoundedContext: a[0]}, nil
		},
	},
	{
		Name: "RenameElement", Params: "<oldName> <newName>", MinArgs: 2, MaxArgs: 2,
		Summary: "rename an element; references follow",
		build: func(a []string) (Refactoring, error) {
			return &RenameElement{OldName: a[0], NewName: a[1]}, nil
		},
	},
}
