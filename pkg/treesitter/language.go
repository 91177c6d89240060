// Package treesitter supplies syntax trees for TypeScript, TSX and JavaScript
// using the tree-sitter grammars.
package treesitter

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/spicery/tsast/pkg/syntax"
)

var ErrUnknownLanguage = errors.New("unknown language")

const (
	TypeScript = "typescript"
	TSX        = "tsx"
	JavaScript = "javascript"

	// TriviaName names the synthetic kind given to uncovered source bytes.
	TriviaName = "trivia"
)

var grammars = map[string]func() *sitter.Language{
	TypeScript: typescript.GetLanguage,
	TSX:        tsx.GetLanguage,
	JavaScript: javascript.GetLanguage,
}

var extensions = map[string]string{
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
}

// Language is a grammar plus its kind table. The trivia kind is the first
// code after the grammar's own symbols.
type Language struct {
	Name    string
	grammar *sitter.Language
	names   []string
	trivia  syntax.Kind
}

// Languages lists the supported language names.
func Languages() []string {
	out := make([]string, 0, len(grammars))
	for name := range grammars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName looks a language up by name (case-insensitive).
func ByName(name string) (*Language, error) {
	name = strings.ToLower(name)
	get, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownLanguage, name, strings.Join(Languages(), ", "))
	}
	return newLanguage(name, get())
}

// ForPath picks the language from the file extension. Anything unrecognised
// is parsed as TypeScript.
func ForPath(path string) (*Language, error) {
	if name, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return ByName(name)
	}
	return ByName(TypeScript)
}

func newLanguage(name string, grammar *sitter.Language) (*Language, error) {
	count, err := safecast.Conv[uint16](grammar.SymbolCount())
	if err != nil {
		return nil, fmt.Errorf("%s: symbol count overflow: %w", name, err)
	}
	names := make([]string, count)
	for i := range names {
		names[i] = grammar.SymbolName(sitter.Symbol(i))
	}
	return &Language{
		Name:    name,
		grammar: grammar,
		names:   names,
		trivia:  syntax.Kind(count),
	}, nil
}

// TriviaKind is the code of the synthetic trivia kind.
func (l *Language) TriviaKind() syntax.Kind {
	return l.trivia
}

// KindCount is the number of codes in the table, trivia included.
func (l *Language) KindCount() int {
	return len(l.names) + 1
}

func (l *Language) KindName(k syntax.Kind) string {
	switch {
	case k == l.trivia:
		return TriviaName
	case int(k) < len(l.names):
		return l.names[k]
	}
	// Built-in symbols such as ERROR live outside the regular range.
	if name := l.grammar.SymbolName(sitter.Symbol(k)); name != "" {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}
