package person

import (
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
)

// ImportCoordinator owns the single-flight import lock and the status of the
// latest run. All methods are safe for concurrent use.
type ImportCoordinator struct {
	mu      sync.Mutex
	running bool
	status  domain.ImportStatus
	now     func() time.Time
}

func NewImportCoordinator() *ImportCoordinator {
	return &ImportCoordinator{now: time.Now}
}

// TryStart acquires the lock without blocking. On success the previous status
// is replaced by a fresh in-progress one.
func (c *ImportCoordinator) TryStart() (domain.ImportStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.status, false
	}

	start := c.now()
	c.running = true
	c.status = domain.ImportStatus{
		RunID:      uuid.New(),
		InProgress: true,
		StartTime:  &start,
	}
	return c.status, true
}

// Advance publishes the number of rows stored so far. Values lower than the
// current count are ignored.
func (c *ImportCoordinator) Advance(rows int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || rows < c.status.ProcessedRows {
		return
	}
	c.status.ProcessedRows = rows
}

// Finish finalizes the running import and releases the lock.
func (c *ImportCoordinator) Finish(err error) domain.ImportStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return c.status
	}

	end := c.now()
	c.running = false
	c.status.InProgress = false
	c.status.Completed = err == nil
	c.status.EndTime = &end
	if err != nil {
		c.status.Error = err.Error()
	}
	return c.status
}

func (c *ImportCoordinator) Snapshot() domain.ImportStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}
