package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

// Rule is one entry of a Rules set.
type Rule struct {
	ID     string
	Config RuleConfig
}

// Rules maps rule ids to their configs and remembers insertion order.
// Setting an existing id replaces its config in place; a new id is appended.
// This mirrors object-spread semantics and keeps serialized output stable.
//
// A nil *Rules is a valid empty set for every read method.
type Rules struct {
	list  []Rule
	index map[string]int
}

// NewRules returns a set holding rules in the order given.
func NewRules(rules ...Rule) *Rules {
	r := &Rules{index: make(map[string]int, len(rules))}
	for _, rule := range rules {
		r.Set(rule.ID, rule.Config)
	}
	return r
}

// RulesFromMap converts a loosely typed map into Rules. Map iteration order is
// random, so keys are sorted.
func RulesFromMap(m map[string]interface{}) (*Rules, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewRules()
	for _, k := range keys {
		cfg, err := ParseRuleConfig(m[k])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "rule %q", k)
		}
		r.Set(k, cfg)
	}
	return r, nil
}

// Set stores cfg under id and returns the receiver for chaining.
func (r *Rules) Set(id string, cfg RuleConfig) *Rules {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[id]; ok {
		r.list[i].Config = cfg
		return r
	}
	r.index[id] = len(r.list)
	r.list = append(r.list, Rule{ID: id, Config: cfg})
	return r
}

// Off, Warn and Error are shorthands for Set.
func (r *Rules) Off(id string) *Rules { return r.Set(id, Off()) }

func (r *Rules) Warn(id string, opts ...interface{}) *Rules { return r.Set(id, Warn(opts...)) }

func (r *Rules) Error(id string, opts ...interface{}) *Rules { return r.Set(id, Error(opts...)) }

func (r *Rules) Get(id string) (RuleConfig, bool) {
	if r == nil {
		return RuleConfig{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return RuleConfig{}, false
	}
	return r.list[i].Config, true
}

func (r *Rules) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Delete removes id, keeping the relative order of the remaining rules.
func (r *Rules) Delete(id string) {
	if r == nil {
		return
	}
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.list = append(r.list[:i:i], r.list[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.list); j++ {
		r.index[r.list[j].ID] = j
	}
}

func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// Keys returns rule ids in order.
func (r *Rules) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.list))
	for i, rule := range r.list {
		keys[i] = rule.ID
	}
	return keys
}

// List returns a copy of the entries in order.
func (r *Rules) List() []Rule {
	if r == nil {
		return nil
	}
	out := make([]Rule, len(r.list))
	for i, rule := range r.list {
		out[i] = Rule{ID: rule.ID, Config: rule.Config.Clone()}
	}
	return out
}

// Merge spreads other over r: ids already present are overwritten in place,
// new ids are appended in other's order.
func (r *Rules) Merge(other *Rules) *Rules {
	for _, rule := range other.List() {
		r.Set(rule.ID, rule.Config)
	}
	return r
}

func (r *Rules) Clone() *Rules {
	if r == nil {
		return nil
	}
	return NewRules(r.List()...)
}

// Equal compares ids, order and configs.
func (r *Rules) Equal(o *Rules) bool {
	if r.Len() != o.Len() {
		return false
	}
	a, b := r.List(), o.List()
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Config.Equal(b[i].Config) {
			return false
		}
	}
	return true
}

// MergeRules layers rule tiers, typically plugin defaults, then domain
// adjustments, then caller overrides. It is a shallow merge on rule id: a
// later tier replaces the whole config of a rule, parameters included.
func MergeRules(tiers ...*Rules) *Rules {
	out := NewRules()
	for _, tier := range tiers {
		out.Merge(tier)
	}
	return out
}

func (r *Rules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rule := range r.List() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rule.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rule.Config)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the key order of the JSON object.
func (r *Rules) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("rules: expected object, got %v", tok)
	}

	*r = Rules{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("rules: expected string key, got %v", tok)
		}
		var cfg RuleConfig
		if err := dec.Decode(&cfg); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "rule %q", key)
		}
		r.Set(key, cfg)
	}
	_, err = dec.Token()
	return err
}

func (r *Rules) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, rule := range r.List() {
		val := &yaml.Node{}
		if err := val.Encode(rule.Config); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rule.ID},
			val,
		)
	}
	return node, nil
}

// UnmarshalYAML keeps the key order of the YAML mapping.
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rules: expected mapping at line %d", node.Line)
	}
	*r = Rules{index: make(map[string]int)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var cfg RuleConfig
		if err := node.Content[i+1].Decode(&cfg); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "rule %q", node.Content[i].Value)
		}
		r.Set(node.Content[i].Value, cfg)
	}
	return nil
}
