package differ

import (
	"fmt"
	"os"

	"github.com/erraggy/specdiff/oaserrors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.yaml.in/yaml/v4"
)

// RuleConfig is one entry of a rule file.
//
//	base: default
//	rules:
//	  - name: enum-additions-in-responses
//	    when: context == "response" && keyword == "enum"
//	    breaking: true
type RuleConfig struct {
	Name     string `yaml:"name"`
	When     string `yaml:"when"`
	Breaking bool   `yaml:"breaking"`
}

// RuleFile is the document format read by LoadRules.
type RuleFile struct {
	// Base names the built-in policy consulted when no rule matches: default, strict, or lenient
	Base  string       `yaml:"base"`
	Rules []RuleConfig `yaml:"rules"`
}

// ruleEnv is the environment a rule condition is evaluated against.
type ruleEnv struct {
	ChangeType string `expr:"change_type"`
	Context    string `expr:"context"`
	Element    string `expr:"element"`
	Keyword    string `expr:"keyword"`
	Location   string `expr:"location"`
	Required   bool   `expr:"required"`
	OldValue   string `expr:"old_value"`
	NewValue   string `expr:"new_value"`
	OldKind    string `expr:"old_kind"`
	NewKind    string `expr:"new_kind"`
	// Default is the verdict of the base policy
	Default bool `expr:"default"`
}

type compiledRule struct {
	name     string
	breaking bool
	program  *vm.Program
}

// RulePolicy classifies differences with user-supplied expr-lang conditions.
// Rules are tried in order; the first whose condition holds decides.
// When none matches, Base decides.
type RulePolicy struct {
	Base  Policy
	rules []compiledRule
}

// NewRulePolicy compiles rules over base. A nil base means DefaultPolicy.
func NewRulePolicy(base Policy, rules []RuleConfig) (*RulePolicy, error) {
	if base == nil {
		base = DefaultPolicy{}
	}
	p := &RulePolicy{Base: base, rules: make([]compiledRule, 0, len(rules))}
	for i, rc := range rules {
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("rules[%d]", i)
		}
		program, err := expr.Compile(rc.When, expr.Env(ruleEnv{}), expr.AsBool())
		if err != nil {
			return nil, &oaserrors.ConfigError{
				Option:  "policy.rules",
				Value:   name,
				Message: "failed to compile condition",
				Cause:   err,
			}
		}
		p.rules = append(p.rules, compiledRule{name: name, breaking: rc.Breaking, program: program})
	}
	return p, nil
}

// Len returns the number of compiled rules.
func (p *RulePolicy) Len() int {
	return len(p.rules)
}

// IsBreaking implements Policy.
// A rule whose evaluation fails is skipped.
func (p *RulePolicy) IsBreaking(c Classification) bool {
	env := ruleEnv{
		ChangeType: string(c.ChangeType),
		Context:    string(c.Context),
		Element:    string(c.Element),
		Keyword:    c.Keyword,
		Location:   c.Location,
		Required:   c.Required,
		OldValue:   c.Old.String(),
		NewValue:   c.New.String(),
		OldKind:    c.Old.Kind().String(),
		NewKind:    c.New.Kind().String(),
		Default:    p.Base.IsBreaking(c),
	}
	for _, r := range p.rules {
		out, err := expr.Run(r.program, env)
		if err != nil {
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return r.breaking
		}
	}
	return env.Default
}

// ParseRules builds a RulePolicy from a YAML or JSON rule file.
func ParseRules(data []byte) (*RulePolicy, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, &oaserrors.ConfigError{Option: "policy.file", Message: "malformed rule file", Cause: err}
	}
	base, ok := PolicyByName(rf.Base)
	if !ok {
		return nil, &oaserrors.ConfigError{Option: "policy.base", Value: rf.Base, Message: "unknown policy"}
	}
	return NewRulePolicy(base, rf.Rules)
}

// LoadRules reads a rule file from disk.
func LoadRules(path string) (*RulePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "policy.file", Value: path, Message: "failed to read rule file", Cause: err}
	}
	return ParseRules(data)
}
