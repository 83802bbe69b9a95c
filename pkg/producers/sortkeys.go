package producers

import (
	"context"

	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Key ordering for package.json and tsconfig files. Both rely on the jsonc
// plugin and parser registered by the jsonc domain.
const (
	SortPackageJSONDomain = "sort-package-json"
	SortTSConfigDomain    = "sort-tsconfig"
)

type sortPackageJSONProducer struct{}

func (sortPackageJSONProducer) Domain() string { return SortPackageJSONDomain }

func (sortPackageJSONProducer) Description() string {
	return "Canonical key order for package.json"
}

func (sortPackageJSONProducer) Produce(_ context.Context, in Input) ([]types.Fragment, error) {
	rules := types.NewRules().
		Error("jsonc/sort-array-values",
			M{"order": M{"type": "asc"}, "pathPattern": "^files$"},
		).
		Error("jsonc/sort-keys",
			M{
				"order": strs(
					"publisher", "name", "displayName", "type", "version", "private",
					"packageManager", "description", "author", "contributors", "license",
					"funding", "homepage", "repository", "bugs", "keywords", "categories",
					"sideEffects", "imports", "exports", "main", "module", "unpkg", "jsdelivr",
					"types", "typesVersions", "bin", "icon", "files", "engines",
					"activationEvents", "contributes", "scripts", "peerDependencies",
					"peerDependenciesMeta", "dependencies", "optionalDependencies",
					"devDependencies", "pnpm", "overrides", "resolutions", "husky",
					"simple-git-hooks", "lint-staged", "eslintConfig",
				),
				"pathPattern": "^$",
			},
			M{"order": M{"type": "asc"}, "pathPattern": "^(?:dev|peer|optional|bundled)?[Dd]ependencies(Meta)?$"},
			M{"order": M{"type": "asc"}, "pathPattern": "^(?:resolutions|overrides|pnpm.overrides)$"},
			M{"order": strs("types", "import", "require", "default"), "pathPattern": "^exports.*$"},
			M{
				"order": strs(
					"pre-commit", "prepare-commit-msg", "commit-msg", "post-commit",
					"pre-rebase", "post-rewrite", "post-checkout", "post-merge",
					"pre-push", "pre-auto-gc",
				),
				"pathPattern": "^(?:gitHooks|husky|simple-git-hooks)$",
			},
		)

	return []types.Fragment{{
		Name:  Name(SortPackageJSONDomain, ""),
		Files: in.FilesOr("**/package.json"),
		Rules: types.MergeRules(rules, in.Overrides()),
	}}, nil
}

type sortTSConfigProducer struct{}

func (sortTSConfigProducer) Domain() string { return SortTSConfigDomain }

func (sortTSConfigProducer) Description() string {
	return "Canonical key order for tsconfig files"
}

func (sortTSConfigProducer) Produce(_ context.Context, in Input) ([]types.Fragment, error) {
	rules := types.NewRules().
		Error("jsonc/sort-keys",
			M{
				"order":       strs("extends", "compilerOptions", "references", "files", "include", "exclude"),
				"pathPattern": "^$",
			},
			M{
				"order": strs(
					"incremental", "composite", "tsBuildInfoFile", "disableSourceOfProjectReferenceRedirect",
					"disableSolutionSearching", "disableReferencedProjectLoad",
					"target", "jsx", "jsxFactory", "jsxFragmentFactory", "jsxImportSource", "lib",
					"moduleDetection", "noLib", "reactNamespace", "useDefineForClassFields",
					"emitDecoratorMetadata", "experimentalDecorators",
					"baseUrl", "rootDir", "rootDirs", "customConditions", "module",
					"moduleResolution", "moduleSuffixes", "noResolve", "paths",
					"resolveJsonModule", "resolvePackageJsonExports", "resolvePackageJsonImports",
					"typeRoots", "types", "allowArbitraryExtensions", "allowImportingTsExtensions",
					"allowUmdGlobalAccess",
					"allowJs", "checkJs", "maxNodeModuleJsDepth",
					"strict", "strictBindCallApply", "strictFunctionTypes", "strictNullChecks",
					"strictPropertyInitialization", "allowUnreachableCode", "allowUnusedLabels",
					"alwaysStrict", "exactOptionalPropertyTypes", "noFallthroughCasesInSwitch",
					"noImplicitAny", "noImplicitOverride", "noImplicitReturns", "noImplicitThis",
					"noPropertyAccessFromIndexSignature", "noUncheckedIndexedAccess",
					"noUnusedLocals", "noUnusedParameters", "useUnknownInCatchVariables",
					"declaration", "declarationDir", "declarationMap", "downlevelIteration",
					"emitBOM", "emitDeclarationOnly", "importHelpers", "importsNotUsedAsValues",
					"inlineSourceMap", "inlineSources", "mapRoot", "newLine", "noEmit",
					"noEmitHelpers", "noEmitOnError", "outDir", "outFile", "preserveConstEnums",
					"preserveValueImports", "removeComments", "sourceMap", "sourceRoot",
					"stripInternal",
					"allowSyntheticDefaultImports", "esModuleInterop",
					"forceConsistentCasingInFileNames", "isolatedDeclarations", "isolatedModules",
					"preserveSymlinks", "verbatimModuleSyntax",
					"skipDefaultLibCheck", "skipLibCheck",
				),
				"pathPattern": "^compilerOptions$",
			},
		)

	return []types.Fragment{{
		Name:  Name(SortTSConfigDomain, ""),
		Files: in.FilesOr("**/tsconfig.json", "**/tsconfig.*.json"),
		Rules: types.MergeRules(rules, in.Overrides()),
	}}, nil
}

func strs(s ...string) []interface{} {
	return toInterfaces(s)
}

func init() {
	MustRegister(sortPackageJSONProducer{})
	MustRegister(sortTSConfigProducer{})
}
