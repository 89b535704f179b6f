// Package platform assembles the document store service from its parts:
// schema validator, storage backend and core service. It is the only place
// that knows every adapter by name.
package platform

import (
	"errors"
	"fmt"

	"github.com/aretw0/planstore/pkg/adapters/fs"
	"github.com/aretw0/planstore/pkg/adapters/memory"
	"github.com/aretw0/planstore/pkg/adapters/redis"
	"github.com/aretw0/planstore/pkg/adapters/sqlite"
	"github.com/aretw0/planstore/pkg/core"
	"github.com/aretw0/planstore/pkg/schema"
)

// New assembles a document store Service.
//
// The uri argument is adapter-specific: a data directory for "fs", a database
// file for "sqlite", a server address for "redis"; the "memory" adapter
// ignores it.
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	validator, err := buildValidator(o)
	if err != nil {
		return nil, err
	}

	backend, err := buildBackend(uri, o)
	if err != nil {
		return nil, err
	}

	var svcOpts []core.Option
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	if o.eventBuffer > 0 {
		svcOpts = append(svcOpts, core.WithEventBuffer(o.eventBuffer))
	}
	if o.readOnly {
		svcOpts = append(svcOpts, core.WithReadOnly(true))
	}

	return core.NewService(backend, validator, svcOpts...), nil
}

func buildValidator(o *options) (core.Validator, error) {
	if o.validator != nil {
		return o.validator, nil
	}
	switch {
	case len(o.schemaBytes) > 0:
		return schema.New(o.schemaBytes)
	case o.schemaPath != "":
		return schema.NewFromFile(o.schemaPath)
	default:
		return nil, errors.New("a schema is required: use WithSchemaFile or WithSchemaBytes")
	}
}

func buildBackend(uri string, o *options) (core.Backend, error) {
	if o.backend != nil {
		return o.backend, nil
	}

	switch o.adapter {
	case "memory", "":
		return memory.New(), nil
	case "redis":
		if uri == "" {
			return nil, errors.New("redis adapter requires a server address")
		}
		return redis.New(redis.Config{Addr: uri, Password: o.redisPassword, DB: o.redisDB}), nil
	case "fs":
		return fs.New(fs.Config{Dir: uri, Logger: o.logger})
	case "sqlite":
		if uri == "" {
			return nil, errors.New("sqlite adapter requires a database path")
		}
		return sqlite.New(uri)
	default:
		return nil, fmt.Errorf("unknown adapter: %q (supported: memory, redis, fs, sqlite)", o.adapter)
	}
}
