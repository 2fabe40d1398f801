package metrics

import (
	"time"

	"github.com/backusd/cubeworld/log"
	"github.com/shirou/gopsutil/v3/cpu"
)

// How often the system CPU usage is queried.
const cpuSampleInterval = time.Second

// CPUCounter reports the system wide CPU usage. If usage cannot be queried
// the counter reports 0 instead of failing.
type CPUCounter struct {
	logger log.Logger

	now     func() time.Time
	percent func() (float64, error)

	canRead    bool
	lastSample time.Time
	usage      int
}

func NewCPUCounter() *CPUCounter {
	return &CPUCounter{
		logger:  log.New("cpu"),
		now:     time.Now,
		percent: systemPercent,
	}
}

// Non-blocking usage since the previous call.
func systemPercent() (float64, error) {
	values, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	return values[0], nil
}

func (c *CPUCounter) Init() error {
	c.canRead = true
	c.usage = 0
	c.lastSample = c.now()

	// Prime the counter; gopsutil reports usage relative to the previous call.
	if _, err := c.percent(); err != nil {
		c.logger.Warningf("cpu usage unavailable: %v", err)
		c.canRead = false
	}
	return nil
}

func (c *CPUCounter) Frame() {
	if !c.canRead {
		return
	}

	now := c.now()
	if now.Sub(c.lastSample) < cpuSampleInterval {
		return
	}
	c.lastSample = now

	pct, err := c.percent()
	if err != nil {
		c.logger.Warningf("cpu usage unavailable: %v", err)
		c.canRead = false
		c.usage = 0
		return
	}
	c.usage = int(pct)
}

// Get the last sampled usage percentage.
func (c *CPUCounter) Percent() int {
	if !c.canRead {
		return 0
	}
	return c.usage
}

func (c *CPUCounter) Shutdown() {
	c.canRead = false
}
