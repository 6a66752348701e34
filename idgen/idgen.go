// Package idgen produces globally unique record identifiers.
package idgen

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Generator hands out unique identifiers in string form.
type Generator interface {
	NextID() (string, error)
}

// Kind names a Generator implementation.
type Kind string

const (
	KindSnowflake Kind = "snowflake"
	KindUUID      Kind = "uuid"
)

// Config selects and parameterizes a Generator.
type Config struct {
	Kind         Kind  `yaml:"kind"`
	WorkerID     int64 `yaml:"worker_id"`
	DatacenterID int64 `yaml:"datacenter_id"`
}

// DefaultConfig returns a snowflake generator for worker 0 in datacenter 0.
func DefaultConfig() Config {
	return Config{Kind: KindSnowflake}
}

// Validate checks the generator kind and the snowflake node bits.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Kind, validation.Required, validation.In(KindSnowflake, KindUUID)),
		validation.Field(&c.WorkerID, validation.Min(int64(0)), validation.Max(int64(maxWorkerID))),
		validation.Field(&c.DatacenterID, validation.Min(int64(0)), validation.Max(int64(maxDatacenterID))),
	)
}

// New builds the Generator selected by cfg.
func New(cfg Config) (Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindUUID:
		return UUID{}, nil
	case KindSnowflake:
		return NewSnowflake(cfg.WorkerID, cfg.DatacenterID)
	default:
		return nil, fmt.Errorf("idgen: unsupported kind %q", cfg.Kind)
	}
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NextID returns a new random UUID.
func (UUID) NextID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("idgen: uuid: %w", err)
	}
	return id.String(), nil
}
