package producers

import (
	"bufio"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// GitignoreDomain turns .gitignore entries into global ignores.
const GitignoreDomain = "gitignore"

type gitignoreOptions struct {
	// Strict fails when a listed file is missing
	Strict bool `mapstructure:"strict"`
}

type gitignoreProducer struct{}

func (gitignoreProducer) Domain() string { return GitignoreDomain }

func (gitignoreProducer) Description() string {
	return "Global ignores read from .gitignore files"
}

func (gitignoreProducer) Produce(ctx context.Context, in Input) ([]types.Fragment, error) {
	logger := logging.GetLogger("producers.gitignore")

	// Here files lists ignore files relative to the project root. Listing
	// them explicitly makes them mandatory unless strict is off.
	opts := gitignoreOptions{Strict: in.Options.Files != nil}
	if err := in.Options.Decode(&opts); err != nil {
		return nil, err
	}

	var ignores []string
	for _, file := range in.FilesOr(".gitignore") {
		full := file
		if !filepath.IsAbs(full) {
			full = filepath.Join(in.Flags.Dir, file)
		}
		patterns, err := ReadGitignore(full)
		if os.IsNotExist(err) {
			if opts.Strict {
				return nil, errors.Newf(errors.ErrNotFound, "ignore file %s not found", file).
					WithDetail("path", full)
			}
			logger.Debug().Str("path", full).Msg("No ignore file")
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", file)
		}
		base := filepath.ToSlash(filepath.Dir(filepath.Clean(file)))
		if filepath.IsAbs(file) {
			base = "."
		}
		for _, p := range patterns {
			ignores = append(ignores, convertGitignore(p, base))
		}
	}

	if len(ignores) == 0 {
		return nil, nil
	}
	return []types.Fragment{{
		Name:    Name(GitignoreDomain, ""),
		Ignores: ignores,
	}}, nil
}

// ReadGitignore returns the meaningful lines of an ignore file, comments and
// blanks dropped.
func ReadGitignore(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
			line = line[1:]
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// convertGitignore rewrites one gitignore pattern into an ignore glob
// relative to the project root. base is the directory holding the ignore
// file.
func convertGitignore(p, base string) string {
	negate := strings.HasPrefix(p, "!")
	p = strings.TrimPrefix(p, "!")
	p = strings.TrimSuffix(p, "/")

	anchored := strings.HasPrefix(p, "/") || strings.Contains(p, "/")
	p = strings.TrimPrefix(p, "/")
	if !anchored && !strings.HasPrefix(p, "**/") {
		p = "**/" + p
	}
	if base != "." && base != "" {
		p = path.Join(base, p)
	}
	if negate {
		return "!" + p
	}
	return p
}

func init() {
	MustRegister(gitignoreProducer{})
}
