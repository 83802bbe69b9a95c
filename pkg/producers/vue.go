package producers

import (
	"context"
	"maps"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// VueDomain holds the Vue single-file component setup.
const VueDomain = "vue"

const (
	pkgVue       = "eslint-plugin-vue"
	pkgVueParser = "vue-eslint-parser"
	pkgVueBlocks = "eslint-processor-vue-blocks"
)

type vueOptions struct {
	// VueVersion selects the vue 2 or vue 3 presets
	VueVersion int `mapstructure:"vueVersion"`
	// SFCBlocks is false, true, or the block processor's options; unset
	// means true
	SFCBlocks interface{} `mapstructure:"sfcBlocks"`
}

var vueGlobals = map[string]string{
	"computed":        "readonly",
	"defineEmits":     "readonly",
	"defineExpose":    "readonly",
	"defineProps":     "readonly",
	"onMounted":       "readonly",
	"onUnmounted":     "readonly",
	"reactive":        "readonly",
	"ref":             "readonly",
	"shallowReactive": "readonly",
	"shallowRef":      "readonly",
	"toRef":           "readonly",
	"toRefs":          "readonly",
	"watch":           "readonly",
	"watchEffect":     "readonly",
}

type vueProducer struct{}

func (vueProducer) Domain() string { return VueDomain }

func (vueProducer) Description() string {
	return "Vue single-file components: parser, block processor, vue 2 or 3 presets"
}

func (vueProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	opts := vueOptions{VueVersion: 3}
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}
	if opts.VueVersion != 2 && opts.VueVersion != 3 {
		return nil, errors.Newf(errors.ErrInvalidInput, "vueVersion must be 2 or 3, got %d", opts.VueVersion).
			WithDetail("domain", VueDomain)
	}
	blocks, err := sfcBlocks(opts.SFCBlocks)
	if err != nil {
		return nil, err
	}

	ids := []string{pkgVue, pkgVueParser, pkgVueBlocks}
	if in.Flags.TypeScript {
		ids = append(ids, pkgTSParser)
	}
	defs, err := requirePackages(ctx, in, VueDomain, ids...)
	if err != nil {
		return nil, err
	}
	plugin, parser, blockProc := defs[0], defs[1], defs[2]
	ns := plugin.Namespace

	parserOptions := M{
		"ecmaFeatures":        M{"jsx": true},
		"extraFileExtensions": []interface{}{".vue"},
		"sourceType":          "module",
	}
	if in.Flags.TypeScript {
		parserOptions["parser"] = defs[3].ID
	}

	sfc := processorOf(plugin, ".vue")
	processor := types.MergeProcessors(sfc)
	var settings M
	if blocks != nil {
		name := processorOf(blockProc, "vue-blocks")
		processor = types.MergeProcessors(sfc, name)
		settings = M{name: blocks}
	}

	presets := []string{"vue3-essential", "vue3-strongly-recommended", "vue3-recommended"}
	if opts.VueVersion == 2 {
		presets = []string{"essential", "strongly-recommended", "recommended"}
	}
	tiers := []*types.Rules{plugin.Config("base")}
	for _, p := range presets {
		tiers = append(tiers, plugin.Config(p))
	}
	tiers = append(tiers, vueAdjustments(ns, in), in.Overrides())

	return []types.Fragment{
		{
			Name: Name(VueDomain, "setup"),
			LanguageOptions: &types.LanguageOptions{
				Globals: maps.Clone(vueGlobals),
			},
			Plugins: map[string]*types.PluginDefinition{ns: plugin},
		},
		{
			Name:  Name(VueDomain, "rules"),
			Files: in.FilesOr(globs.Vue),
			LanguageOptions: &types.LanguageOptions{
				Parser:        parser,
				ParserOptions: parserOptions,
			},
			Processor: processor,
			Rules:     types.MergeRules(tiers...),
			Settings:  settings,
		},
	}, nil
}

// sfcBlocks returns nil when block extraction is off, else the block
// processor options with styles extracted by default.
func sfcBlocks(v interface{}) (M, error) {
	switch t := v.(type) {
	case nil:
		return M{"blocks": M{"styles": true}}, nil
	case bool:
		if !t {
			return nil, nil
		}
		return M{"blocks": M{"styles": true}}, nil
	case map[string]interface{}:
		out := types.CloneMap(t)
		blocks := M{"styles": true}
		if user, ok := out["blocks"].(map[string]interface{}); ok {
			for k, v := range user {
				blocks[k] = v
			}
		}
		out["blocks"] = blocks
		return out, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "sfcBlocks must be a boolean or an object, got %T", v).
		WithDetail("domain", VueDomain)
}

func vueAdjustments(ns string, in Input) *types.Rules {
	r := types.NewRules().
		Off("antfu/no-top-level-await").
		Off("n/prefer-global/process").
		Off("@typescript-eslint/explicit-function-return-type").
		Error(ns+"/block-order", M{"order": []interface{}{"script", "template", "style"}}).
		Error(ns+"/component-name-in-template-casing", "PascalCase").
		Error(ns+"/component-options-name-casing", "PascalCase").
		Off(ns+"/component-tags-order").
		Error(ns+"/custom-event-name-casing", "camelCase").
		Error(ns+"/define-macros-order", M{
			"order": []interface{}{"defineOptions", "defineProps", "defineEmits", "defineSlots"},
		}).
		Error(ns+"/dot-location", "property").
		Error(ns+"/dot-notation", M{"allowKeywords": true}).
		Error(ns+"/eqeqeq", "smart").
		Error(ns+"/html-quotes", "double").
		Off(ns+"/max-attributes-per-line").
		Off(ns+"/multi-word-component-names").
		Off(ns+"/no-dupe-keys").
		Error(ns+"/no-empty-pattern").
		Error(ns+"/no-irregular-whitespace").
		Error(ns+"/no-loss-of-precision").
		Error(ns+"/no-restricted-syntax", "DebuggerStatement", "LabeledStatement", "WithStatement").
		Error(ns+"/no-restricted-v-bind", "/^v-/").
		Off(ns+"/no-setup-props-reactivity-loss").
		Error(ns+"/no-sparse-arrays").
		Error(ns+"/no-unused-refs").
		Error(ns+"/no-useless-v-bind").
		Off(ns+"/no-v-html").
		Error(ns+"/object-shorthand", "always", M{"avoidQuotes": true, "ignoreConstructors": false}).
		Error(ns+"/prefer-separate-static-class").
		Error(ns+"/prefer-template").
		Error(ns+"/prop-name-casing", "camelCase").
		Off(ns+"/require-default-prop").
		Off(ns+"/require-prop-types").
		Error(ns+"/space-infix-ops").
		Error(ns+"/space-unary-ops", M{"nonwords": false, "words": true})

	if s := in.Flags.Stylistic; s != nil {
		r.Error(ns+"/array-bracket-spacing", "never").
			Error(ns+"/block-spacing", "always").
			Error(ns+"/brace-style", "1tbs", M{"allowSingleLine": true}).
			Error(ns+"/comma-dangle", "always-multiline").
			Error(ns+"/html-indent", indentValue(s)).
			Error(ns+"/key-spacing", M{"afterColon": true, "beforeColon": false}).
			Error(ns+"/object-curly-spacing", "always").
			Error(ns+"/quote-props", "consistent-as-needed")
	}
	return r
}

func init() {
	MustRegister(vueProducer{})
}
