package messaging

import "errors"

// ErrEmptyTopic indicates a publish or subscribe was attempted without a topic.
var ErrEmptyTopic = errors.New("topic must not be empty")
