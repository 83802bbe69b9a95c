package flatcompose

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Compose ESLint flat-config lists from one options object"
	MsgComposeShort    = "Compose and print the configuration list"
	MsgInspectShort    = "List the composed fragments as a table"
	MsgResolveShort    = "Show the effective configuration of one file"
	MsgProbeShort      = "Show which domains are enabled by default"
	MsgDomainsShort    = "List the available domains"
	MsgInitShort       = "Write a starter flatcompose.toml"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgHelpShort       = "Help about any command or topic"

	// Status messages
	MsgWrote          = "Wrote %s"
	MsgWatching       = "Watching %s for changes (Ctrl-C to stop)"
	MsgRecomposed     = "Recomposed after change to %s"
	MsgInitCreated    = "Created %s"
	MsgDomainsHeader  = "# Domains\n\n| Domain | Description | Packages |\n| --- | --- | --- |\n"
	MsgDomainsRow     = "| %s | %s | %s |\n"
	MsgDomainsBundled = "bundled"
	MsgTopicsHeader   = "# Help topics\n\nRun `flatcompose help <topic>` to read one.\n\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrInitExists   = "%s already exists, use --force to overwrite"
	MsgErrWatchFailed  = "failed to watch %s"
	MsgErrUnknownTopic = "unknown command or help topic %q"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDir          = "Project directory"
	MsgFlagConfig       = "Settings file (default: flatcompose.toml in the project directory)"
	MsgFlagFormat       = "Output format: auto, term, text, json or yaml"
	MsgFlagSet          = "Set a settings key, e.g. --set options.vue=false (repeatable)"
	MsgFlagOut          = "Write to this file instead of stdout"
	MsgFlagWatch        = "Compose again whenever inputs change"
	MsgFlagTypeScript   = "Enable or disable the typescript domain"
	MsgFlagStylistic    = "Enable or disable the stylistic domain"
	MsgFlagInEditor     = "Force editor mode on or off"
	MsgFlagAutoRename   = "Shorten plugin namespaces"
	MsgFlagComponentExt = "Extra component file extensions (repeatable)"
	MsgFlagForce        = "Overwrite an existing file"
	MsgFlagManDir       = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/compose-long.txt
	msgComposeLongRaw string
	MsgComposeLong    = strings.TrimSpace(msgComposeLongRaw)

	//go:embed msgs/compose-example.txt
	msgComposeExampleRaw string
	MsgComposeExample    = strings.TrimRight(msgComposeExampleRaw, "\n")

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimRight(msgResolveExampleRaw, "\n")

	//go:embed msgs/probe-long.txt
	msgProbeLongRaw string
	MsgProbeLong    = strings.TrimSpace(msgProbeLongRaw)
)

// MsgUsageTemplate is the cobra usage template
const MsgUsageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`
