package redis

// StreamConfig identifies the request stream a worker consumes and the
// result stream it replies on.
type StreamConfig struct {
	Addr         string
	Password     string
	Stream       string
	Group        string
	ConsumerName string
	ResultStream string
}

func NewStreamConfig(addr, password, stream, group, consumerName, resultStream string) *StreamConfig {
	return &StreamConfig{
		Addr:         addr,
		Password:     password,
		Stream:       stream,
		Group:        group,
		ConsumerName: consumerName,
		ResultStream: resultStream,
	}
}
