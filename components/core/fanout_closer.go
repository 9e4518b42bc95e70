package core

// FanoutCloser propagates the close call to the underlying closers.
type FanoutCloser struct {
	closers []closerNode
}

// Add registers a closer with id to be notified when the close event happens.
func (c *FanoutCloser) Add(id string, closer Closer) {
	c.closers = append(c.closers, closerNode{id: id, closer: closer})
}

// Close closes all the registered closers.
func (c *FanoutCloser) Close() error {
	for _, node := range c.closers {
		if err := node.closer.Close(); err != nil {
			LogErr.Printf("fanout-closer: failed to close: id=%s err=%v\n", node.id, err)
		}
	}

	return nil
}

type closerNode struct {
	id     string
	closer Closer
}
