package parser

import (
	"net/url"
	"path/filepath"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
)

// newDocument builds a libopenapi document from raw bytes. A non-empty
// source URL enables $ref resolution relative to the document: local
// paths permit file references, http(s) URLs permit remote ones.
// Anything else, including an unparseable URL, loads the document
// standalone.
func newDocument(data []byte, specURL string) (libopenapi.Document, error) {
	cfg := resolutionConfig(specURL)
	if cfg == nil {
		return libopenapi.NewDocument(data)
	}
	return libopenapi.NewDocumentWithConfiguration(data, cfg)
}

func resolutionConfig(specURL string) *datamodel.DocumentConfiguration {
	if specURL == "" {
		return nil
	}
	u, err := url.Parse(specURL)
	if err != nil {
		return nil
	}

	cfg := datamodel.NewDocumentConfiguration()
	switch u.Scheme {
	case "", "file":
		cfg.AllowFileReferences = true
		cfg.BasePath = filepath.Dir(u.Path)
		cfg.SpecFilePath = filepath.Base(u.Path)
	case "http", "https":
		cfg.AllowRemoteReferences = true
		cfg.BaseURL = u
	default:
		return nil
	}
	return cfg
}
