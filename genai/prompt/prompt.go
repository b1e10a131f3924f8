package prompt

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	afs "github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

type (
	Prompt struct {
		Text   string `yaml:"text,omitempty" json:"text,omitempty"`
		URI    string `yaml:"uri,omitempty" json:"uri,omitempty"`
		Engine string `yaml:"engine,omitempty" json:"engine,omitempty"`
		fs     afs.Service
		goTemplatePrompt
	}

	goTemplatePrompt struct {
		once           sync.Once
		parsedTemplate *template.Template
		parseErr       error
		lastSourceHash string
	}
)

// New creates a prompt backed by the template at URI.
func New(fs afs.Service, URI string) *Prompt {
	return &Prompt{URI: URI, fs: fs}
}

func (a *Prompt) service() afs.Service {
	if a.fs == nil {
		a.fs = afs.New()
	}
	return a.fs
}

// Generate expands the template with binding. A URI-backed template is re-read on
// every call so edits apply without a restart.
func (a *Prompt) Generate(ctx context.Context, binding Binding) (string, error) {
	if a == nil {
		return "", nil
	}
	if strings.TrimSpace(a.URI) != "" {
		data, err := a.service().DownloadWithURL(ctx, normalize(a.URI))
		if err != nil {
			return "", err
		}
		a.Text = string(data)
	}

	prompt := a.Text
	if strings.TrimSpace(prompt) == "" {
		return "", nil
	}

	switch strings.ToLower(strings.TrimSpace(a.Engine)) {
	case "go", "gotmpl", "text/template":
		if changed := a.updateGoTemplateHash(prompt); changed {
			a.goTemplatePrompt.once = sync.Once{}
			a.goTemplatePrompt.parsedTemplate = nil
			a.goTemplatePrompt.parseErr = nil
		}
		return a.generateGoTemplatePrompt(prompt, binding)
	case "placeholder", "":
		return binding.replacer().Replace(prompt), nil
	default:
		return "", errors.New("unsupported prompt type: " + a.Engine)
	}
}

// updateGoTemplateHash returns true when the source changed since the last call.
func (a *Prompt) updateGoTemplateHash(src string) bool {
	h := sha1.Sum([]byte(src))
	newHash := hex.EncodeToString(h[:])
	if a.goTemplatePrompt.lastSourceHash == newHash {
		return false
	}
	a.goTemplatePrompt.lastSourceHash = newHash
	return true
}

func (a *goTemplatePrompt) generateGoTemplatePrompt(prompt string, binding Binding) (string, error) {
	a.once.Do(func() {
		a.parsedTemplate, a.parseErr = template.New("prompt").Parse(prompt)
	})
	if a.parseErr != nil {
		return "", a.parseErr
	}
	var buf bytes.Buffer
	if err := a.parsedTemplate.Execute(&buf, binding.Data()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalize(uri string) string {
	if url.Scheme(uri, "") != "" {
		return uri
	}
	if abs, err := filepath.Abs(uri); err == nil {
		uri = abs
	}
	return file.Scheme + "://" + uri
}
