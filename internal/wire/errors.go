package wire

// ChannelError — отказ транспортного канала: обрыв соединения,
// нечитаемый кадр или кадр неожиданного вида. Для соединения это
// фатально с точки зрения вызывающей стороны — надо переподключаться.
type ChannelError struct {
	Op  string // "read", "write", "encode", "decode"
	Err error
}

func (e *ChannelError) Error() string {
	return "channel " + e.Op + ": " + e.Err.Error()
}

func (e *ChannelError) Unwrap() error { return e.Err }
