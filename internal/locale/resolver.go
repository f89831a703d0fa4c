// Package locale resolves the host language and looks up the localized
// strings used to title and label report sections.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Default is the language used when the host locale is unset or unsupported.
const Default = "en"

// Supported lists the language subtags the report can be rendered in.
var Supported = []string{"en", "it", "es", "fr", "de"}

// Query reads one host locale setting. It returns "" when the setting is
// unset or the underlying API fails.
type Query func() string

// Resolver maps the host locale to a supported language.
type Resolver struct {
	override string
	queries  []Query
}

// NewResolver creates a resolver over the platform's locale queries. A
// non-empty override (from config or HOSTREPORT_LANG) is tried first.
func NewResolver(override string) *Resolver {
	return &Resolver{
		override: override,
		queries:  platformQueries(),
	}
}

// NewResolverWithQueries creates a resolver over an explicit query sequence.
func NewResolverWithQueries(override string, queries ...Query) *Resolver {
	return &Resolver{override: override, queries: queries}
}

// Resolve returns the first supported language found, in order: override,
// then each host query. The first query that yields any value decides the
// result, so an unsupported host language resolves to Default rather than
// falling through to a later query.
func (r *Resolver) Resolve() string {
	if lang, ok := Match(r.override); ok {
		return lang
	}

	for _, query := range r.queries {
		raw := query()
		if normalize(raw) == "" {
			continue
		}
		if lang, ok := Match(raw); ok {
			return lang
		}
		return Default
	}

	return Default
}

// Match extracts the language subtag from a locale string such as
// "it_IT.UTF-8", "de-DE" or "fr_CA@euro" and reports whether it is supported.
func Match(raw string) (string, bool) {
	value := normalize(raw)
	if value == "" {
		return "", false
	}

	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}

	lang := base.String()
	for _, supported := range Supported {
		if lang == supported {
			return lang, true
		}
	}
	return "", false
}

// normalize strips encoding and modifier suffixes and converts POSIX
// separators to BCP 47 ones. "C" and "POSIX" count as unset.
func normalize(raw string) string {
	value := strings.TrimSpace(raw)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(value, "_", "-")

	switch strings.ToUpper(value) {
	case "", "C", "POSIX":
		return ""
	}
	return value
}

// envQuery reads a locale environment variable. LANGUAGE holds a
// colon-separated priority list; only its first entry is used.
func envQuery(name string) Query {
	return func() string {
		value := os.Getenv(name)
		if name == "LANGUAGE" {
			value, _, _ = strings.Cut(value, ":")
		}
		return value
	}
}

func envQueries() []Query {
	return []Query{
		envQuery("LC_ALL"),
		envQuery("LC_MESSAGES"),
		envQuery("LANG"),
		envQuery("LANGUAGE"),
	}
}
