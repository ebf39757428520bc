package main

import (
	"context"

	"venomdocs/internal/config"
	"venomdocs/internal/meta"
	"venomdocs/internal/model"
	"venomdocs/internal/openapi"
)

// routeSet is everything read from the configured route source.
type routeSet struct {
	Routes  []*model.Route
	Version string
	Title   string
}

// loadRoutes reads the configured source. Version and title from cfg win
// over what the document itself declares.
func loadRoutes(ctx context.Context, cfg config.Config) (routeSet, error) {
	var set routeSet

	kind, location := cfg.Source()
	switch kind {
	case config.SourceOpenAPIURL, config.SourceOpenAPIFile:
		load := openapi.LoadFile
		if kind == config.SourceOpenAPIURL {
			load = openapi.LoadURL
		}
		doc, err := load(ctx, location)
		if err != nil {
			return set, err
		}
		set.Routes = openapi.ExtractRoutes(doc)
		set.Version = openapi.Version(doc)
		set.Title = openapi.Title(doc)

	case config.SourceRoutesFile, config.SourceRoutesURL:
		var (
			doc *meta.Document
			err error
		)
		if kind == config.SourceRoutesFile {
			doc, err = meta.LoadFile(location)
		} else {
			doc, err = meta.Fetch(ctx, location)
		}
		if err != nil {
			return set, err
		}
		set.Routes = doc.Routes
		set.Version = string(doc.Version)
	}

	if cfg.Version != "" {
		set.Version = cfg.Version
	}
	if cfg.Title != "" {
		set.Title = cfg.Title
	}
	return set, nil
}
