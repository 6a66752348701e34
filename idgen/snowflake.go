package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

const (
	// Epoch is the snowflake time origin in unix milliseconds
	// (2010-11-04T01:42:54.657Z), the default of snowflake.Epoch.
	Epoch int64 = 1288834974657

	workerIDBits     = 5
	datacenterIDBits = 5

	maxWorkerID     = -1 ^ (-1 << workerIDBits)
	maxDatacenterID = -1 ^ (-1 << datacenterIDBits)
)

// Snowflake generates 63-bit time ordered ids unique per (datacenter, worker).
// The ten node bits hold the datacenter id above the worker id.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake validates the node bits and returns a generator.
func NewSnowflake(workerID, datacenterID int64) (*Snowflake, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("idgen: worker id must be between 0 and %d", maxWorkerID)
	}
	if datacenterID < 0 || datacenterID > maxDatacenterID {
		return nil, fmt.Errorf("idgen: datacenter id must be between 0 and %d", maxDatacenterID)
	}

	node, err := snowflake.NewNode(datacenterID<<workerIDBits | workerID)
	if err != nil {
		return nil, fmt.Errorf("idgen: snowflake node: %w", err)
	}
	return &Snowflake{node: node}, nil
}

// NextID returns the next id in decimal form.
func (s *Snowflake) NextID() (string, error) {
	return s.node.Generate().String(), nil
}
