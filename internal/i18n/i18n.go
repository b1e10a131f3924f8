// Package i18n holds the response message catalogs and resolves the printer for a request.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale for unsupported requests.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is a set of locale catalogs with a language matcher.
type Bundle struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

var defaultBundle = mustLoad()

// Default returns the embedded bundle.
func Default() *Bundle { return defaultBundle }

func mustLoad() *Bundle {
	bundle, err := Load(embedded)
	if err != nil {
		panic(err)
	}
	return bundle
}

// Load reads every locales/*.yaml catalog in catalogFS.
func Load(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	files := make(map[string][]byte, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		files[path] = data
	}
	return build(files)
}

// LoadURL reads every *.yaml catalog stored directly under baseURL.
func LoadURL(ctx context.Context, service afs.Service, baseURL string) (*Bundle, error) {
	if service == nil {
		service = afs.New()
	}
	baseURL = normalize(baseURL)
	objects, err := service.List(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("list locale catalogs %s: %w", baseURL, err)
	}
	files := map[string][]byte{}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".yaml") {
			continue
		}
		data, err := service.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", object.URL(), err)
		}
		files[object.URL()] = data
	}
	return build(files)
}

func build(files map[string][]byte) (*Bundle, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	base := language.MustParse(BaseLocale)
	bundle := &Bundle{builder: catalog.NewBuilder(catalog.Fallback(base))}
	seenBase := false
	for _, path := range paths {
		parsed := &catalogFile{}
		if err := yaml.Unmarshal(files[path], parsed); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(parsed.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q in %s: %w", parsed.Locale, path, err)
		}
		for key, msg := range parsed.Messages {
			if err := bundle.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set %s/%s: %w", parsed.Locale, key, err)
			}
		}
		if tag == base {
			seenBase = true
			bundle.supported = append([]language.Tag{tag}, bundle.supported...)
			continue
		}
		bundle.supported = append(bundle.supported, tag)
	}
	if !seenBase {
		return nil, fmt.Errorf("missing %s catalog", BaseLocale)
	}
	bundle.matcher = language.NewMatcher(bundle.supported)
	return bundle, nil
}

func normalize(location string) string {
	if url.Scheme(location, "") != "" {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return file.Scheme + "://" + location
}

// Supported returns the loaded locale tags, base locale first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.supported...)
}

// Match picks the closest supported tag for an Accept-Language header value.
func (b *Bundle) Match(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return b.supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return b.supported[0]
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return b.supported[0]
	}
	return b.supported[index]
}

// Printer returns a printer bound to the bundle catalogs.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Text translates key for tag; unknown keys are returned verbatim.
func (b *Bundle) Text(tag language.Tag, key string, args ...any) string {
	return b.Printer(tag).Sprintf(key, args...)
}

// FromRequest resolves the request language from its Accept-Language header.
func (b *Bundle) FromRequest(r *http.Request) language.Tag {
	if r == nil {
		return b.supported[0]
	}
	return b.Match(r.Header.Get("Accept-Language"))
}
