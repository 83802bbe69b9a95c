package types

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

var (
	ruleConfigType = reflect.TypeOf(RuleConfig{})
	rulesPtrType   = reflect.TypeOf(&Rules{})
)

// RulesDecodeHook lets mapstructure decode loosely typed option values into
// RuleConfig and *Rules fields.
func RulesDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		switch to {
		case ruleConfigType:
			if from == ruleConfigType {
				return data, nil
			}
			return ParseRuleConfig(data)
		case rulesPtrType:
			switch x := data.(type) {
			case *Rules:
				return x, nil
			case Rules:
				return x.Clone(), nil
			case map[string]interface{}:
				return RulesFromMap(x)
			case map[interface{}]interface{}:
				m := make(map[string]interface{}, len(x))
				for k, v := range x {
					if ks, ok := k.(string); ok {
						m[ks] = v
					}
				}
				return RulesFromMap(m)
			}
		}
		return data, nil
	}
}
