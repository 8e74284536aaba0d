package snowflake

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"

	"staffpulse/config"
)

var (
	node    *snowflake.Node
	once    sync.Once
	initErr error

	errInvalidMachineID = errors.New("invalid snowflake machine id")
)

func initNode(machineID, dataCenterID int64) {
	if machineID < 0 || machineID > 31 || dataCenterID < 0 || dataCenterID > 31 {
		initErr = errInvalidMachineID
		return
	}
	// datacenterID and machineID are both 0~31
	nodeID := (dataCenterID << 5) | machineID
	node, initErr = snowflake.NewNode(nodeID)
}

// Init builds the generator explicitly; mains call it at startup so a
// bad node id fails fast.
func Init(machineID, dataCenterID int64) error {
	once.Do(func() { initNode(machineID, dataCenterID) })
	return initErr
}

// NextID generates a new snowflake id, initializing the node from config
// on first use.
func NextID() int64 {
	once.Do(func() {
		initNode(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter)
	})
	if initErr != nil {
		panic("snowflake generator unavailable: " + initErr.Error())
	}
	return node.Generate().Int64()
}

// ParseID reads an id previously rendered as a decimal string.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
