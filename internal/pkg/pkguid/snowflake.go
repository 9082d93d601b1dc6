package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// NumberID generates unique, roughly time-ordered numeric identifiers.
type NumberID interface {
	Generate() int64
}

// epochMillis anchors generated IDs: Wed Jan 01 2025 00:00:00 UTC.
const epochMillis int64 = 1735689600000

//nolint:gochecknoglobals // snowflake.Epoch is package state in the library
var setEpoch sync.Once

type Snowflake struct {
	node *snowflake.Node
}

func randomNodeID() (int64, error) {
	var nodeID uint16
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}

	return int64(nodeID) & (1<<snowflake.NodeBits - 1), nil
}

// NewSnowflake picks a random node ID. A single process runs one node, so
// collisions only matter across replicas.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := randomNodeID()
	if err != nil {
		return nil, err
	}
	return NewSnowflakeNode(nodeID)
}

// NewSnowflakeNode builds a generator for a fixed node ID.
func NewSnowflakeNode(nodeID int64) (*Snowflake, error) {
	setEpoch.Do(func() { snowflake.Epoch = epochMillis })

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
